package schema

// Numeric type codes observed in the embedded schema. The set is closed:
// anything else is skipped rather than guessed at.
const (
	codeShortText    = 0
	codeParagraph    = 1
	codeSingleChoice = 2
	codeDropdown     = 3
	codeMultiChoice  = 4
	codeLinearScale  = 5
	codeGrid         = 7
	codePageBreak    = 8
	codeDate         = 9
	codeTime         = 10
	codeRating       = 18
)

// ItemRecord is one raw decoded questionnaire item. Created once per decode
// pass, immutable, consumed by the classifier and discarded.
type ItemRecord struct {
	ID          int64
	Title       string
	Description string
	TypeCode    int64

	// Payload is the item's positional variant payload; nil when the entry
	// carried none, which is the authoritative section-header signal.
	Payload seq

	// EntryID and Required come from the payload's first answer descriptor.
	// Grid items decode their per-row descriptors in the classifier instead.
	EntryID  int64
	Required bool

	// PageBreak marks that segmentation starts a new page after this item.
	// It is a capability decoupled from section-header detection: observed
	// schema revisions disagree on the carrier, but the break-after meaning
	// is constant.
	PageBreak bool
}

// FormMeta is the form-level header decoded alongside the item list.
type FormMeta struct {
	Title        string
	Description  string
	CollectEmail bool
}
