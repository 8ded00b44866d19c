package employee

import "hrmsconsole/internal/platform/validate"

var ErrInvalidID = validate.Fail("employee id must be a positive integer", "id", "must be greater than 0")
