package naruapi

// Envelope is the data4library response wrapper. Every endpoint nests its
// payload one level down under "response".
type Envelope struct {
	Response Response `json:"response"`
}

// Response carries whichever of the payload fields the endpoint fills:
// docs for /srchBooks, result for /bookExist, error on any rejection.
type Response struct {
	Error  string       `json:"error,omitempty"`
	Docs   []DocWrapper `json:"docs,omitempty"`
	Result *Result      `json:"result,omitempty"`
}

// DocWrapper is the extra nesting level around each search hit.
type DocWrapper struct {
	Doc BookDoc `json:"doc"`
}

// BookDoc is one search hit from /srchBooks.
type BookDoc struct {
	ISBN13      string `json:"isbn13"`
	Title       string `json:"bookname"`
	Authors     string `json:"authors"`
	Publisher   string `json:"publisher"`
	PublishYear string `json:"publication_year"`
}

// Result is the availability verdict from /bookExist. The API reports the
// flags as literal "Y"/"N" strings.
type Result struct {
	HasBook       string `json:"hasBook"`
	LoanAvailable string `json:"loanAvailable"`
}

// Availability is the decoded verdict for one (branch, ISBN) pair.
type Availability struct {
	HasBook       bool
	LoanAvailable bool
}

// Flag returns the loan flag in its persisted "Y"/"N" form.
func (a Availability) Flag() string {
	if a.LoanAvailable {
		return "Y"
	}
	return "N"
}
