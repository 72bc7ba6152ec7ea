// Package validation checks flat string input against pipe-separated rules.
//
//	errs := validation.Validate(map[string]string{
//	    "name":  input.Name,
//	    "email": input.Email,
//	}, validation.Rules{
//	    "name":  "required|between:2,100",
//	    "email": "required|email",
//	})
//	if err := errs.Err(); err != nil {
//	    return nil, err // a validation.Errors
//	}
//
// Handlers answer 422 with the messages:
//
//	var errs validation.Errors
//	if errors.As(err, &errs) {
//	    gohttp.NewResponse(w).Unprocessable(errs)
//	}
//
// # Rules
//
//	required     non-blank
//	email        RFC 5322 address
//	uuid         canonical UUID
//	numeric      parses as a float
//	alpha_dash   letters, digits, dashes and underscores
//	min:n        at least n characters
//	max:n        at most n characters
//	between:a,b  between a and b characters
//	in:a,b,c     one of the listed values
//	sometimes    skip the remaining rules when the value is empty
package validation
