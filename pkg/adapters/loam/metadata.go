package loam

// FormMetadata is the document shape of a form definition: the whole object of
// a .json/.yaml file, or the frontmatter of a .md file.
// Fields and Pairs stay raw so they can be decoded strictly with mapstructure.
type FormMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
	Fields      []any  `json:"fields" mapstructure:"fields"`
	Pairs       []any  `json:"pairs" mapstructure:"pairs"`
}
