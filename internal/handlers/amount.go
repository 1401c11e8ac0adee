package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount aceita número JSON ou string numérica ("20000"). String vazia ou
// null contam como ausente; texto que não é número vira NaN e é recusado
// na validação.
type Amount struct {
	Value *float64
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		a.Value = nil
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			a.Value = nil
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(v, 0) {
			v = math.NaN()
		}
		a.Value = &v
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		nan := math.NaN()
		a.Value = &nan
		return nil
	}
	a.Value = &v
	return nil
}
