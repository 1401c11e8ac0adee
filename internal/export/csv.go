package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Field struct {
	Key   string
	Value any
}

// Record é um objeto plano com ordem de chaves preservada.
type Record []Field

func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, f := range r {
		keys = append(keys, f.Key)
	}
	return keys
}

// ObjectsToCSV usa as chaves do primeiro registro como cabeçalho. Células com
// vírgula, aspas ou quebra de linha vão entre aspas, com aspas duplicadas.
func ObjectsToCSV(records []Record) string {
	if len(records) == 0 {
		return ""
	}

	headers := records[0].Keys()

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(headers, ","))

	for _, rec := range records {
		cells := make([]string, 0, len(headers))
		for _, h := range headers {
			v, _ := rec.Get(h)
			cells = append(cells, escape(cell(v)))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\n")
}

func escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case int:
		return strconv.Itoa(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Filename gera o nome do arquivo com a data do dia (UTC).
func Filename(now time.Time) string {
	return fmt.Sprintf("submissions-export-%s.csv", now.UTC().Format("2006-01-02"))
}
