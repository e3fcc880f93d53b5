package sqlt

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

/*
Escapes text per the SQL standard by doubling single quotes. Suitable for
Postgres with `standard_conforming_strings` on, SQLite, and MySQL in
`NO_BACKSLASH_ESCAPES` mode.
*/
type StandardEscaper struct{}

// Implement `Escaper`.
func (StandardEscaper) Escape(src string) (string, error) {
	return strings.ReplaceAll(src, `'`, `''`), nil
}

/*
Escapes text with the rules of MySQL's `mysql_real_escape_string` for
single-byte-safe character sets such as utf8mb4: backslash-escapes NUL,
newline, carriage return, backslash, both quotes and Ctrl-Z.
*/
type MySQLEscaper struct{}

var mysqlReplacer = strings.NewReplacer(
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"\x1a", `\Z`,
)

// Implement `Escaper`.
func (MySQLEscaper) Escape(src string) (string, error) {
	return mysqlReplacer.Replace(src), nil
}

var errNoConn = errors.New(`Postgres escaper has no connection`)

/*
Escapes text by delegating to a live Postgres connection via
`(*pgconn.PgConn).EscapeString`. The connection reports an error unless the
session has `standard_conforming_strings=on` and `client_encoding=UTF8`; such
errors surface as `ErrEscapeFailed`. The escaper never sends anything over
the connection.
*/
type PgEscaper struct{ Conn *pgconn.PgConn }

// Shortcut for making a `PgEscaper` from a `*pgx.Conn`.
func NewPgEscaper(conn *pgx.Conn) PgEscaper {
	if conn == nil {
		return PgEscaper{}
	}
	return PgEscaper{conn.PgConn()}
}

// Implement `Escaper`.
func (self PgEscaper) Escape(src string) (string, error) {
	if self.Conn == nil {
		return ``, errNoConn
	}
	return self.Conn.EscapeString(src)
}
