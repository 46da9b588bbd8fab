package transcript

import (
	"fmt"

	"github.com/gomutex/godocx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// SaveDocx renders the same transcript body as Format into a styled docx
// file: bold timestamp and speaker label, regular text.
func SaveDocx(turns []SpeakerTurn, outputPath, title string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	if title != "" {
		p := doc.AddParagraph("")
		p.AddText(title).Font(fontName).Size(16).Color("000000").Bold(true)
		doc.AddParagraph("")
	}

	labels := speakerLabels(turns)
	for _, turn := range turns {
		p := doc.AddParagraph("")
		prefix := fmt.Sprintf("%s %s: ", FormatTimestamp(turn.StartSeconds), labels[turn.Speaker])
		p.AddText(prefix).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		p.AddText(turn.Text).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}
