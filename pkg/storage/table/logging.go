package table

import "go.uber.org/zap"

func zapChunkFields(t *Table, size int) []zap.Field {
	return []zap.Field{
		zap.Int("rows", size),
		zap.Int("chunk_index", len(t.chunks)-1),
		zap.String("table_type", tableTypeName(t.tableType)),
	}
}

func tableTypeName(tt Type) string {
	if tt == References {
		return "references"
	}
	return "data"
}
