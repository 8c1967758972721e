package algorithm

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/gogpu/plotgen"
)

// Params is the untyped parameter bag supplied by callers. Keys match the
// mapstructure tags of each algorithm's config, case-insensitively.
type Params map[string]any

// config is implemented by pointer receivers of algorithm config structs.
type config[T any] interface {
	*T
	clamp()
}

// decode overlays p on def and clamps the result. Values that cannot be
// decoded are logged and the defaults kept; decoding never fails the
// generation.
func decode[T any, P config[T]](id string, p Params, def T) T {
	out := def
	if len(p) > 0 {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &out,
			WeaklyTypedInput: true,
			ZeroFields:       true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		})
		if err == nil {
			err = dec.Decode(map[string]any(p))
		}
		if err != nil {
			plotgen.Logger().Warn("algorithm: params decode failed, using defaults",
				"algorithm", id, "error", err)
			out = def
		}
	}
	P(&out).clamp()
	return out
}

func clampF(v, lo, hi float64) float64 {
	if v != v {
		return lo
	}
	return max(lo, min(hi, v))
}

func clampI(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// orDefault replaces values outside the allowed set.
func orDefault(v string, def string, allowed ...string) string {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}
