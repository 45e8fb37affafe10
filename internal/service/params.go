// internal/service/params.go
package service

import (
	"strconv"

	"bank-console/internal/domain"
	"bank-console/internal/util"
)

// params checks arity and hands out positional values.
type params struct {
	values []string
}

func expectParams(req domain.Request, n int) (params, error) {
	if len(req.Params) != n {
		return params{}, util.Reject(MsgBadParameters)
	}
	return params{values: req.Params}, nil
}

// id parses position i as a non-negative identifier.
func (p params) id(i int) (int64, error) {
	n, err := strconv.ParseInt(p.values[i], 10, 64)
	if err != nil || n < 0 {
		return 0, util.Reject(MsgBadParameters)
	}
	return n, nil
}

// amount parses position i as a positive number of cents.
func (p params) amount(i int) (int64, error) {
	n, err := strconv.ParseInt(p.values[i], 10, 64)
	if err != nil || n <= 0 {
		return 0, util.Reject(MsgBadParameters)
	}
	return n, nil
}

// credential returns position i if it is a usable username or password.
func (p params) credential(i int) (string, error) {
	if !domain.ValidCredential(p.values[i]) {
		return "", util.Reject(MsgBadParameters)
	}
	return p.values[i], nil
}
