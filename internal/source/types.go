package source

// FileKind distinguishes the two input CSVs.
type FileKind string

const (
	KindProjects     FileKind = "projects"
	KindChangeOrders FileKind = "change_orders"
)

// DiscoveredFile is one input CSV found during directory scanning.
type DiscoveredFile struct {
	Path string
	Kind FileKind
}
