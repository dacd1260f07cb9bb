package context

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rapidpro/expressions/types"
)

// FromInterface converts a generic Go value - the shape produced by
// encoding/json or gopkg.in/yaml.v3 unmarshalling into interface{} - into a
// types.Value, recursively turning maps into Containers. This is a
// convenience for callers (cmd/excellent, cmd/excellentd) that accept
// variables as JSON/YAML; the core resolution protocol itself never needs
// it.
func FromInterface(v interface{}) (types.Value, error) {
	switch val := v.(type) {
	case nil:
		return types.NewString(""), nil
	case bool:
		return types.NewBool(val), nil
	case string:
		return types.NewString(val), nil
	case int:
		return types.NewInt(int64(val)), nil
	case int64:
		return types.NewInt(val), nil
	case float64:
		return types.NewDec(decimal.NewFromFloat(val)), nil
	case map[string]interface{}:
		c := types.NewContainer()
		for k, child := range val {
			cv, err := FromInterface(child)
			if err != nil {
				return types.Value{}, err
			}
			c.Set(k, cv)
		}
		return types.NewContainer(c), nil
	case []interface{}:
		c := types.NewContainer()
		for i, child := range val {
			cv, err := FromInterface(child)
			if err != nil {
				return types.Value{}, err
			}
			c.Set(fmt.Sprintf("%d", i), cv)
		}
		return types.NewContainer(c), nil
	default:
		return types.Value{}, fmt.Errorf("unsupported variable value of type %T", v)
	}
}
