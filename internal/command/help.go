package command

const helpText = `📋 clipkeep commands:

Core Actions:
• paste N — paste entry N
• append N — append entry N to current clipboard
• copy N — copy entry N to clipboard
• pin N / unpin N — pin/unpin entry
• favorite N / unfavorite N — favorite/unfavorite entry
• delete N — delete entry
• lock N — lock/unlock entry
• clear --force [--all] — clear non-pinned entries (--all includes pinned; locked always stay)
• undo — restore the last deleted entry

View & Search:
• list [N] — show the newest N entries
• preview N — show full content of entry N
• open N — open URL in entry N
• search QUERY — search history (supports re:regex and "exact")

Transformations:
• trim N — remove whitespace
• uppercase N / lowercase N / titlecase N
• compress N — remove blank and duplicate lines
• format N as json|yaml
• convert N to markdown|plain

Snippets & Templates:
• snippet save NAME from N — save entry N as snippet
• snippet list — list all snippets
• snippet paste NAME — paste snippet
• snippet delete NAME — delete snippet
• template insert NAME — insert template
• template list — list templates

Advanced:
• ocr N — OCR image entry N
• log show N — show recent actions

Smart Content Intelligence:
• auto-tag [N] — auto-tag entries (URL, Email, Code, etc.)
• summarize N — summarize long text
• translate N to LANG — translation
• detect-lang N — show detected language
• shorten-url N — shorten a long URL
• extract-links N — extract all links from text

Workflow Automation:
• auto-copy [add NAME PATTERN ACTION] — transform new clipboard content
  (ACTION is trim, uppercase, lowercase or remove-spaces;
   also: auto-copy remove|enable|disable NAME)
• auto-paste, trigger, rule — not implemented yet

Time & Context:
• stats N — show entry usage statistics
• reminder N "message" at TIME — record a reminder (reminder list)
• schedule N at TIME — record a scheduled paste (schedule list)
  TIME is a duration (30m), a clock time (15:04) or a date (2025-10-18T15:04)

Integration:
• export json|csv PATH — export history
• import PATH — import snippets from a JSON file
• send, webhook, ai-format — not implemented yet`

func (d *Dispatcher) help(call) string {
	return helpText
}
