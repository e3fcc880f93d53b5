/*
SQL Templates: builds SQL query strings from templates with positional
placeholders, inlining arguments as escaped SQL literals. Oriented towards
hand-written SQL: the package never parses or validates the SQL itself, and
never executes queries.

Placeholders

A placeholder is "?" optionally followed by a specifier. Each placeholder
consumes exactly one argument, from left to right.

	?    Generic: nil -> NULL, strings -> escaped and single-quoted,
	     numbers and booleans -> unquoted literals.
	?d   Integer. The argument is coerced, see `CoerceInt`.
	?f   Float. The argument is coerced, see `CoerceFloat`.
	?a   List: "(one, two, three)". Elements are escaped but NOT quoted.
	?#   Identifier or list of identifiers. Escaped, never quoted.

Conditional blocks

A block "?{...}" ends at the first following "}". If any placeholder inside the
block is bound to the sentinel returned by `Skip`, the whole block is removed.
Otherwise only the delimiters are removed. Blocks can't be nested.

	sqlt.Build(esc,
		`SELECT name FROM users WHERE ?# IN ?a?{ AND block = ?d}`,
		`user_id`, []int{1, 2, 3}, sqlt.Skip(),
	)
	// SELECT name FROM users WHERE user_id IN (1, 2, 3)

Fragments

Queries can be assembled from fragments, each with its own arguments. `Join`
drops fragments that build to nothing, such as a single skipped block:

	sqlt.Join(esc, ` AND `,
		sqlt.Q(`id IN ?a`, []int{1, 2}),
		sqlt.Q(`?{name = ?}`, sqlt.Skip()),
	)
	// id IN (1, 2)

Escaping

Escaping rules are supplied by an `Escaper`, usually tied to the database
connection. See `StandardEscaper`, `MySQLEscaper` and `PgEscaper`.

Errors

Failures are reported as `Err` values. Use `errors.Is` with the exported
`Err*` variables, such as `ErrMalformedTemplate`, to detect specific failures.
*/
package sqlt
