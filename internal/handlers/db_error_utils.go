package handlers

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrForeignKey = 1452

// isForeignKeyConstraintError reports whether err is a MySQL foreign key
// failure, which here means the request pointed a listing, complaint or
// booking at a category, city or user that does not exist. Handlers turn
// it into a 400 instead of a 500.
func isForeignKeyConstraintError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrForeignKey
}
