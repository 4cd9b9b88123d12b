package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If none of the given errors is non-nil, nil is returned.
// If exactly one error is non-nil, that error is returned.
// Otherwise a group of errors is returned. A group is flattened, so a group
// appended to a group does not create nesting.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, err)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr is a group of errors returned together. The first error decides
// about the ABCI code.
type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// ABCICode returns the code of the first error in the group.
func (m multiErr) ABCICode() uint32 {
	if len(m) == 0 {
		return SuccessABCICode
	}
	return abciCode(m[0])
}

// Unpack returns all errors that this group consists of.
func (m multiErr) Unpack() []error {
	return m
}
