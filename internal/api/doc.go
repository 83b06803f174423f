// Package api exposes form validation over HTTP.
//
// A client posts a form schema: its controls with values and the rules
// attached to them. The service builds the controls, runs the rules and
// answers with the rendered messages in the negotiated language, or with
// the normalized values when the form is valid. Files are posted as
// multipart/form-data with the schema in the "schema" part.
//
//	POST /validate
//	{
//	  "form": "signup",
//	  "fields": [
//	    {"name": "email", "label": "Email", "value": "a@b",
//	     "rules": [{"validator": "filled"}, {"validator": "email"}]},
//	    {"name": "password", "value": "secret",
//	     "rules": [{"validator": "minLength", "arg": 8}]},
//	    {"name": "confirm", "value": "secret",
//	     "rules": [{"validator": "equal", "arg": {"ref": "password"}}]}
//	  ]
//	}
package api
