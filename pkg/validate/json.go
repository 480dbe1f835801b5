package validate

import (
	"bytes"
	"encoding/json"
	"time"
)

// JSON validates a raw JSON graph document. Besides the rules of [Graph] it
// reports arrays and fields of the wrong JSON type. Edges may name their
// source with from_node and their target with to_node.
func JSON(data []byte) Result {
	start := time.Now()

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return finish(start, []string{msgNotObject})
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return finish(start, []string{msgNotObject})
	}

	rawNodes, ok := obj["nodes"].([]any)
	if !ok {
		return finish(start, []string{msgNodesArray})
	}
	rawEdges, ok := obj["edges"].([]any)
	if !ok {
		return finish(start, []string{msgEdgesArray})
	}

	nodes := make([]nodeItem, len(rawNodes))
	for i, raw := range rawNodes {
		m, ok := raw.(map[string]any)
		if !ok {
			nodes[i].notObject = true
			continue
		}
		nodes[i] = nodeItem{
			id:   jsonField(m, "id"),
			typ:  jsonField(m, "type"),
			desc: jsonField(m, "description"),
		}
	}

	edges := make([]edgeItem, len(rawEdges))
	for i, raw := range rawEdges {
		m, ok := raw.(map[string]any)
		if !ok {
			edges[i].notObject = true
			continue
		}
		edges[i] = edgeItem{
			from: jsonField(m, "from", "from_node"),
			to:   jsonField(m, "to", "to_node"),
			typ:  jsonField(m, "type"),
			desc: jsonField(m, "description"),
		}
	}
	return finish(start, check(nodes, edges))
}

// jsonField reads the first of keys that is present and not null.
func jsonField(m map[string]any, keys ...string) field {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			return stringField(s)
		}
		text, _ := json.Marshal(v)
		return field{value: string(text), present: true, wrongType: true}
	}
	return field{}
}
