package model

type ReportKind string

const (
	// ReportNoData means no JSON object was obtained (transport failure or
	// a non-JSON body).
	ReportNoData ReportKind = "no_data"
	// ReportError means the upstream answered with a structured error payload.
	ReportError ReportKind = "error"
	// ReportEmpty means the check succeeded but carried no quota data.
	ReportEmpty ReportKind = "empty"
	// ReportRaw means the payload was a JSON object in none of the known
	// shapes; a truncated preview is shown instead.
	ReportRaw ReportKind = "raw"
	// ReportPackages means at least one quota package was extracted.
	ReportPackages ReportKind = "packages"
)

// QuotaReport is the normalized view of one upstream quota-check response.
// It is derived per call and never mutated afterwards.
type QuotaReport struct {
	MSISDN     string
	HTTPStatus int
	Kind       ReportKind
	// ErrorMessage carries the upstream error wording verbatim when Kind is ReportError.
	ErrorMessage string
	// UpstreamStatus echoes an optional status field from the error payload.
	UpstreamStatus string
	// RawPreview holds a truncated pretty-printed payload when Kind is ReportRaw.
	RawPreview string
	Packages   []QuotaPackage
}

// QuotaPackage is one quota bundle on the subscriber account.
type QuotaPackage struct {
	Name    string // defaults to "Paket" when the payload names nothing
	Expiry  string // "-" when absent
	Details []LineItem
}

// LineItem is a single benefit row inside a package. All fields are kept as
// strings; the upstream mixes numbers, strings and formatted amounts freely.
type LineItem struct {
	Benefit   string
	Kind      string // upper-cased, may be empty
	Remaining string
	Total     string
	Percent   string // whichever of remaining/used percentage was present
}
