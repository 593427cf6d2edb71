package query

import "fmt"

// Condition is one WHERE predicate. SQL returns the fragment and its
// parameters; paramIndex is the first free @pN index.
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

func paramName(i int) string {
	return fmt.Sprintf("p%d", i)
}

type eqCondition struct {
	field string
	value interface{}
}

// Eq matches rows where field = value.
func Eq(field string, value interface{}) Condition {
	return &eqCondition{field: field, value: value}
}

func (c *eqCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	return fmt.Sprintf("%s = @%s", c.field, name), map[string]interface{}{name: c.value}
}

type arrayContainsCondition struct {
	field string
	value interface{}
}

// ArrayContains matches rows whose ARRAY column field holds value.
func ArrayContains(field string, value interface{}) Condition {
	return &arrayContainsCondition{field: field, value: value}
}

func (c *arrayContainsCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	return fmt.Sprintf("@%s IN UNNEST(%s)", name, c.field), map[string]interface{}{name: c.value}
}

type arrayContainsFoldCondition struct {
	field string
	value string
}

// ArrayContainsFold matches rows whose ARRAY<STRING> column field holds an
// element equal to value ignoring case.
func ArrayContainsFold(field, value string) Condition {
	return &arrayContainsFoldCondition{field: field, value: value}
}

func (c *arrayContainsFoldCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	return fmt.Sprintf("EXISTS(SELECT 1 FROM UNNEST(%s) AS elem WHERE LOWER(elem) = LOWER(@%s))", c.field, name),
		map[string]interface{}{name: c.value}
}

type nullCondition struct {
	field string
	not   bool
}

// IsNull matches rows where field IS NULL.
func IsNull(field string) Condition {
	return &nullCondition{field: field}
}

// IsNotNull matches rows where field IS NOT NULL.
func IsNotNull(field string) Condition {
	return &nullCondition{field: field, not: true}
}

func (c *nullCondition) SQL(int) (string, map[string]interface{}) {
	if c.not {
		return c.field + " IS NOT NULL", map[string]interface{}{}
	}
	return c.field + " IS NULL", map[string]interface{}{}
}
