package store

import (
	"bytes"
	"encoding/json"
)

// Normalize decodifica la respuesta de un listado descartando los registros cuyo id
// no es un entero JSON. Devuelve los válidos y cuántos se descartaron.
func Normalize[E any](raws []json.RawMessage) ([]E, int) {
	out := make([]E, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		if !hasIntegerID(raw) {
			dropped++
			continue
		}
		var e E
		if err := json.Unmarshal(raw, &e); err != nil {
			dropped++
			continue
		}
		out = append(out, e)
	}
	return out, dropped
}

func hasIntegerID(raw json.RawMessage) bool {
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	id := bytes.TrimSpace(probe.ID)
	if len(id) == 0 {
		return false
	}
	dec := json.NewDecoder(bytes.NewReader(id))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return false
	}
	n, ok := tok.(json.Number)
	if !ok {
		return false
	}
	_, err = n.Int64()
	return err == nil
}
