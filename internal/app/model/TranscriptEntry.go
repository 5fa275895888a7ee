package model

// TranscriptEntry is the outcome of transcribing one segment.
// A failed entry always carries an empty Text, so a successful call that
// returned nothing can be told apart from a call that never succeeded.
type TranscriptEntry struct {
	Index int
	Text  string
	Err   error
}

func (e TranscriptEntry) Failed() bool {
	return e.Err != nil
}
