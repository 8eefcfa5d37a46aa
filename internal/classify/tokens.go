package classify

// EstimateTokens gives a rough LLM token count for content. Most tokenizers
// average ~4 chars/token for English text and ~3 for code, so code-tagged
// content uses the denser ratio.
func EstimateTokens(content string, tags []Tag) int {
	ratio := 4.0
	for _, t := range tags {
		if t == TagCode || t == TagJSON {
			ratio = 3.0
			break
		}
	}
	return int(float64(len(content)) / ratio)
}
