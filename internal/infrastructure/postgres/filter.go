package postgres

import (
	"fmt"
	"strings"
)

// conds acumula condiciones WHERE con placeholders posicionales.
type conds struct {
	parts []string
	args  []any
}

// add agrega una condición; cada "?" se reemplaza por el siguiente $n.
func (c *conds) add(cond string, args ...any) {
	for _, a := range args {
		c.args = append(c.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(c.args)), 1)
	}
	c.parts = append(c.parts, cond)
}

func (c *conds) where() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

// page agrega LIMIT/OFFSET al final de los argumentos.
func (c *conds) page(limit, offset int) string {
	c.args = append(c.args, limitOrAll(limit), offset)
	n := len(c.args)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n-1, n)
}
