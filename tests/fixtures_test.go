package tests

import "github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"

var lectureCaptions = []model.CaptionEntry{
	{Time: "0:01", Text: "Good morning, today we start thermodynamics."},
	{Time: "0:04", Text: "um"},
	{Time: "0:06", Text: "The first law says energy is conserved."},
	{Time: "0:06", Text: "the first law says energy is conserved."},
	{Time: "0:12", Text: "The second law says entropy of an isolated system never decreases."},
	{Time: "0:20", Text: "Heat flows spontaneously from hot bodies to cold bodies."},
	{Time: "0:31", Text: "Next week we will cover Carnot engines and efficiency."},
}
