package store

import (
	"database/sql/driver"
	"fmt"

	"modernc.org/sqlite"

	"github.com/nhle/mediashelf/internal/model"
)

// foldFunc is the SQL name of model.Fold. SQLite's NOCASE and LIKE only
// fold ASCII; queries call fold() instead so SQL and Go agree on case.
const foldFunc = "fold"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(foldFunc, 1, sqlFold); err != nil {
		panic(fmt.Sprintf("registering sqlite function %s: %v", foldFunc, err))
	}
}

func sqlFold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return model.Fold(v), nil
	case []byte:
		return model.Fold(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument type %T", foldFunc, v)
	}
}
