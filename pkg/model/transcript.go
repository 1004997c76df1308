package model

// CaptionEntry is one raw caption row as read from the lecture page.
type CaptionEntry struct {
	Text string `json:"text" yaml:"text"`
	Time string `json:"time,omitempty" yaml:"time,omitempty"`
}

// CleanedEntry is a caption row that survived normalization.
type CleanedEntry struct {
	Text string `json:"text" yaml:"text"`
	Time string `json:"time,omitempty" yaml:"time,omitempty"`
}

type Transcript struct {
	Entries []CleanedEntry `json:"entries"`
	Text    string         `json:"text"`
}
