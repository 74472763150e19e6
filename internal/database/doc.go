// Package database persists completed check runs in a local SQLite
// database so results can be reviewed and compared between engagements.
package database
