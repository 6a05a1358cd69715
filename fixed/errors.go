package fixed

import "errors"

// ErrDivideByZero is returned by Div and Mod when the divisor's raw value is zero
var ErrDivideByZero = errors.New("divide by zero")
