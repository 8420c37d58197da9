package logging

// Field names shared by all components so log output can be filtered consistently.
const (
	FieldFile      = "file_path"
	FieldConfig    = "config_path"
	FieldParser    = "parser"
	FieldStage     = "stage"
	FieldAccount   = "account"
	FieldAlias     = "alias"
	FieldPayee     = "payee"
	FieldRule      = "rule"
	FieldPattern   = "pattern"
	FieldCount     = "count"
	FieldDropped   = "dropped"
	FieldDelimiter = "delimiter"
	FieldBytes     = "bytes"
)
