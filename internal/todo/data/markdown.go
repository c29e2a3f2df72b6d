package data

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// markdownFormat identifies exported documents. It is static so that equal
// task sets always encode to byte-identical output.
const markdownFormat = "deskmate/todo"

const dueDateLayout = "2006-01-02"

var dueSuffixRe = regexp.MustCompile(`\s*\(due:\s*([^)]+)\)\s*$`)

// EncodeMarkdown serializes a task snapshot to a Markdown document with one
// checklist section per quadrant, in fixed order. Output is deterministic:
// sections always appear, tasks are sorted by the display rule, and tags are
// kept in canonical order.
func EncodeMarkdown(tasks []Task) []byte {
	grouped := make(map[Quadrant][]Task)
	for _, t := range tasks {
		q := t.Quadrant()
		grouped[q] = append(grouped[q], t)
	}

	var buf bytes.Buffer
	buf.WriteString("---\nformat: ")
	buf.WriteString(markdownFormat)
	buf.WriteString("\n---\n\n# Todo\n\n")

	for _, q := range Quadrants {
		buf.WriteString("## ")
		buf.WriteString(q.String())
		buf.WriteString("\n\n")

		section := grouped[q]
		SortTasks(section)
		for _, t := range section {
			buf.WriteString(checklistLine(t))
			buf.WriteByte('\n')
		}
		if len(section) > 0 {
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}

func checklistLine(t Task) string {
	var b strings.Builder
	if t.Completed {
		b.WriteString("- [x] ")
	} else {
		b.WriteString("- [ ] ")
	}
	b.WriteString(t.Title)
	if t.DueDate != nil {
		fmt.Fprintf(&b, " (due: %s)", t.DueDate.Format(dueDateLayout))
	}
	for _, tag := range t.Tags {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	return b.String()
}

// DecodeMarkdown parses a Markdown document back into tasks. The parse is
// tolerant: non-checklist lines are skipped, checklist items under an
// unrecognized (or missing) quadrant header land in Eliminate, and malformed
// due dates are dropped while the task itself is kept. Only input that is not
// decodable as text at all is an error.
//
// Markdown carries no task IDs or creation times, so decoded tasks receive
// fresh ones.
func DecodeMarkdown(input []byte) ([]Task, error) {
	if !utf8.Valid(input) {
		return nil, &FormatError{Msg: "input is not valid UTF-8 text"}
	}

	body := stripFrontmatter(input)

	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	doc := md.Parser().Parse(text.NewReader(body))

	current := QuadrantEliminate
	var tasks []Task

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 2 {
				current = parseQuadrantHeading(string(node.Text(body)))
			}

		case *east.TaskCheckBox:
			line := string(node.Parent().Text(body))
			title, due, tags := parseChecklistText(line)
			if title == "" {
				return ast.WalkContinue, nil
			}
			urgent, important := quadrantFlags(current)
			t := NewTask(title, urgent, important, tags, due)
			t.Completed = node.IsChecked
			tasks = append(tasks, t)
		}

		return ast.WalkContinue, nil
	})

	return tasks, nil
}

// stripFrontmatter removes an optional YAML frontmatter block. A block that
// fails to parse as YAML is treated as document content instead.
func stripFrontmatter(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content
	}

	var end int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			end = i
			break
		}
	}
	if end == 0 {
		return content
	}

	var fm struct {
		Format string `yaml:"format"`
	}
	if err := yaml.Unmarshal(bytes.Join(lines[1:end], []byte("\n")), &fm); err != nil {
		return content
	}

	return bytes.TrimLeft(bytes.Join(lines[end+1:], []byte("\n")), "\n")
}

func parseQuadrantHeading(heading string) Quadrant {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(heading)), " ", "") {
	case "dofirst":
		return QuadrantDoFirst
	case "schedule":
		return QuadrantSchedule
	case "delegate":
		return QuadrantDelegate
	}
	return QuadrantEliminate
}

func quadrantFlags(q Quadrant) (urgent, important bool) {
	switch q {
	case QuadrantDoFirst:
		return true, true
	case QuadrantSchedule:
		return false, true
	case QuadrantDelegate:
		return true, false
	}
	return false, false
}

// parseChecklistText splits a checklist item's text into title, optional due
// date, and trailing #tag tokens. A due date that fails to parse is dropped.
func parseChecklistText(line string) (string, *time.Time, []string) {
	rest := strings.TrimSpace(line)

	var tags []string
	for {
		idx := strings.LastIndexByte(rest, ' ')
		if idx < 0 {
			break
		}
		token := rest[idx+1:]
		if !strings.HasPrefix(token, "#") || len(token) < 2 {
			break
		}
		tags = append(tags, token[1:])
		rest = strings.TrimRight(rest[:idx], " ")
	}

	var due *time.Time
	if m := dueSuffixRe.FindStringSubmatch(rest); m != nil {
		if parsed, err := time.Parse(dueDateLayout, strings.TrimSpace(m[1])); err == nil {
			due = &parsed
		}
		rest = strings.TrimSpace(rest[:len(rest)-len(m[0])])
	}

	return strings.TrimSpace(rest), due, tags
}
