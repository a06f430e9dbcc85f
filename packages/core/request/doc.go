// Package request defines the on-disk request definition format for kuiper.
//
// A request definition is a JSON file with the .kuiper extension describing
// one HTTP request template:
//
//	{
//	    "uri": "http://localhost/api/users/{{env:USER_ID}}",
//	    "method": "GET",
//	    "headers": {"accept": "application/json", "x-trace": null},
//	    "params": {"page": "1"},
//	    "body": {"id": "{{expr:uuid}}"}
//	}
//
// A header value of null marks the header as deliberately unset; it shadows
// any inherited value and is never sent. Unknown fields are ignored for
// forward compatibility.
package request
