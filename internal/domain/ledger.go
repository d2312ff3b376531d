package domain

// NoDefinitionsMessage is archived in place of winning definitions when a
// day ends without any submissions.
const NoDefinitionsMessage = "No definitions were submitted for this word."

// ArchivedWord is the immutable record of a finished day: the word, its
// illustration, and the distilled winning definitions.
type ArchivedWord struct {
	Word               string   `json:"word"`
	Image              []byte   `json:"image,omitempty"`
	Date               string   `json:"date"`
	WinningDefinitions []string `json:"winning_definitions"`
}

// HasImage reports whether the archived word kept an illustration.
func (a ArchivedWord) HasImage() bool {
	return len(a.Image) > 0
}

// Ledger is the aggregate root: the current word, its submission pool,
// and the archive of past days (newest first). It is persisted as a
// single document and only ever mutated through the ledger store.
type Ledger struct {
	Current     *Word          `json:"current"`
	Submissions []Submission   `json:"submissions"`
	Archive     []ArchivedWord `json:"archive"`
}

// FindSubmission returns a pointer into the ledger's submission pool for
// the given id, or nil if no such submission exists.
func (l *Ledger) FindSubmission(id string) *Submission {
	for i := range l.Submissions {
		if l.Submissions[i].ID == id {
			return &l.Submissions[i]
		}
	}
	return nil
}

// FindArchived returns the archived entry for the given day key, or nil.
func (l *Ledger) FindArchived(date string) *ArchivedWord {
	for i := range l.Archive {
		if l.Archive[i].Date == date {
			return &l.Archive[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the ledger, so a snapshot handed to a
// reader never shares mutable state with the stored value.
func (l Ledger) Clone() Ledger {
	out := Ledger{
		Submissions: make([]Submission, len(l.Submissions)),
		Archive:     make([]ArchivedWord, len(l.Archive)),
	}

	if l.Current != nil {
		w := *l.Current
		w.Image = append([]byte(nil), l.Current.Image...)
		out.Current = &w
	}

	copy(out.Submissions, l.Submissions)

	for i, a := range l.Archive {
		a.Image = append([]byte(nil), a.Image...)
		a.WinningDefinitions = append([]string(nil), a.WinningDefinitions...)
		out.Archive[i] = a
	}

	return out
}
