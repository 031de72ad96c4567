package ocr

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"kycverify/internal/verification/models"
)

// Keys used in ExtractedIDData.OtherDetails.
const (
	DetailDocumentType    = "document_type"
	DetailNationality     = "nationality"
	DetailDistrictOfBirth = "district_of_birth"
	DetailPlaceOfIssue    = "place_of_issue"
	DetailDateOfIssue     = "date_of_issue"
	DetailExpiryDate      = "expiry_date"
	DetailSerialNumber    = "serial_number"

	DocumentHudumaCard = "huduma_card"
	DocumentNationalID = "national_id"
)

type fieldKind int

const (
	fieldIDNumber fieldKind = iota
	fieldFullName
	fieldSurname
	fieldGivenName
	fieldDateOfBirth
	fieldSex
	fieldNationality
	fieldDistrict
	fieldPlaceOfIssue
	fieldDateOfIssue
	fieldExpiry
	fieldSerial
)

// Labels as printed on Kenyan ID and Huduma cards, English and Swahili.
// Longer labels come first so "GIVEN NAMES" wins over "GIVEN NAME".
var fieldLabels = []struct {
	kind   fieldKind
	labels []string
}{
	{fieldIDNumber, []string{"NAMBA YA KITAMBULISHO", "ID NUMBER", "ID NO"}},
	{fieldFullName, []string{"FULL NAMES", "FULL NAME", "JINA KAMILI"}},
	{fieldSurname, []string{"SURNAME", "JINA LA UKOO"}},
	{fieldGivenName, []string{"GIVEN NAMES", "GIVEN NAME", "MAJINA MENGINE"}},
	{fieldDateOfBirth, []string{"DATE OF BIRTH", "SIKU YA KUZALIWA", "DOB"}},
	{fieldSex, []string{"JINSIA", "GENDER", "SEX"}},
	{fieldNationality, []string{"NATIONALITY", "URAIA"}},
	{fieldDistrict, []string{"DISTRICT OF BIRTH", "PLACE OF BIRTH", "MKOA WA KUZALIWA"}},
	{fieldPlaceOfIssue, []string{"PLACE OF ISSUE", "ISSUED AT", "MKOA WA UTOAJI"}},
	{fieldDateOfIssue, []string{"DATE OF ISSUE", "ISSUED ON", "TAREHE YA KUANDIKISHWA"}},
	{fieldExpiry, []string{"DATE OF EXPIRY", "EXPIRY DATE", "TAREHE YA KUISHA"}},
	{fieldSerial, []string{"SERIAL NUMBER", "SERIAL NO"}},
}

var (
	datePattern    = regexp.MustCompile(`(\d{1,2})\s*[./-]\s*(\d{1,2})\s*[./-]\s*(\d{2,4})`)
	standaloneID   = regexp.MustCompile(`(?:^|[^\d./-])(\d{7,8})(?:$|[^\d./-])`)
	nameDisallowed = regexp.MustCompile(`[^\p{L}\s'-]+`)
)

// Parser turns OCR text lines into ID fields. It is pure apart from the clock
// used to resolve two-digit years, and safe for concurrent use.
type Parser struct {
	now func() time.Time
}

// NewParser returns a parser using the wall clock.
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// Parse extracts whatever it can; it never fails.
func (p *Parser) Parse(lines []string) *models.ExtractedIDData {
	out := models.NewExtractedIDData()

	norm := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = normalizeLine(l); l != "" {
			norm = append(norm, l)
		}
	}
	if len(norm) == 0 {
		return out
	}

	if dt := documentType(norm); dt != "" {
		out.OtherDetails[DetailDocumentType] = dt
	}

	values := make(map[fieldKind]string)
	for _, f := range fieldLabels {
		if v, ok := findValue(norm, f.labels); ok {
			values[f.kind] = v
		}
	}

	out.IDNumber = p.idNumber(values[fieldIDNumber], norm)
	out.FullName = p.fullName(values)

	if d, ok := p.parseDate(values[fieldDateOfBirth]); ok {
		out.DateOfBirth = &d
	}
	if raw, ok := values[fieldSex]; ok {
		first, _, _ := strings.Cut(raw, " ")
		g := models.ParseGender(first)
		out.Gender = &g
	}

	p.setText(out, DetailNationality, values[fieldNationality])
	p.setText(out, DetailDistrictOfBirth, values[fieldDistrict])
	p.setText(out, DetailPlaceOfIssue, values[fieldPlaceOfIssue])
	p.setDate(out, DetailDateOfIssue, values[fieldDateOfIssue])
	p.setDate(out, DetailExpiryDate, values[fieldExpiry])
	if s := digitsOnly(values[fieldSerial]); s != "" {
		out.OtherDetails[DetailSerialNumber] = s
	}
	return out
}

func (p *Parser) idNumber(labelled string, lines []string) *string {
	if labelled != "" {
		for _, tok := range strings.Fields(labelled) {
			if d := digitsOnly(tok); idLength(d) && len(d) == len(strings.Trim(tok, ".:,")) {
				return &d
			}
		}
		if d := digitsOnly(labelled); idLength(d) {
			return &d
		}
	}
	for _, l := range lines {
		if containsAnyLabel(l, []string{"SERIAL NUMBER", "SERIAL NO"}) {
			continue
		}
		if m := standaloneID.FindStringSubmatch(l); m != nil {
			id := m[1]
			return &id
		}
	}
	return nil
}

func (p *Parser) fullName(values map[fieldKind]string) *string {
	if n := p.cleanName(values[fieldFullName]); n != "" {
		return &n
	}
	surname := p.cleanName(values[fieldSurname])
	given := p.cleanName(values[fieldGivenName])
	n := strings.TrimSpace(given + " " + surname)
	if n == "" {
		return nil
	}
	return &n
}

func (p *Parser) cleanName(raw string) string {
	s := strings.Join(strings.Fields(nameDisallowed.ReplaceAllString(raw, " ")), " ")
	if s == "" {
		return ""
	}
	// Casers are stateful and must not be shared.
	return cases.Title(language.Und).String(strings.ToLower(s))
}

func (p *Parser) setText(out *models.ExtractedIDData, key, raw string) {
	if s := p.cleanName(raw); s != "" {
		out.OtherDetails[key] = s
	}
}

func (p *Parser) setDate(out *models.ExtractedIDData, key, raw string) {
	if d, ok := p.parseDate(raw); ok {
		out.OtherDetails[key] = d.String()
		return
	}
	if s := strings.TrimSpace(raw); s != "" {
		out.OtherDetails[key] = s
	}
}

// parseDate reads D.M.Y with '.', '/' or '-' separators. Two-digit years
// resolve to the most recent past century.
func (p *Parser) parseDate(raw string) (models.Date, bool) {
	m := datePattern.FindStringSubmatch(raw)
	if m == nil {
		return models.Date{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	switch len(m[3]) {
	case 2:
		pivot := p.now().Year() % 100
		if year <= pivot {
			year += 2000
		} else {
			year += 1900
		}
	case 4:
	default:
		return models.Date{}, false
	}
	if month < 1 || month > 12 || day < 1 {
		return models.Date{}, false
	}
	d := models.NewDate(year, time.Month(month), day)
	if d.Day() != day || int(d.Month()) != month {
		return models.Date{}, false
	}
	return d, true
}

func documentType(lines []string) string {
	text := strings.Join(lines, " ")
	switch {
	case strings.Contains(text, "HUDUMA"):
		return DocumentHudumaCard
	case strings.Contains(text, "NATIONAL") && strings.Contains(text, "IDENTITY"):
		return DocumentNationalID
	default:
		return ""
	}
}

// findValue returns the text following the first occurrence of any label.
// The value is on the same line or, if that is empty, on the next line. It is
// cut at the next known label.
func findValue(lines []string, labels []string) (string, bool) {
	for i, line := range lines {
		for _, label := range labels {
			idx := indexLabel(line, label)
			if idx < 0 {
				continue
			}
			rest := trimValue(line[idx+len(label):])
			rest = cutAtLabel(rest)
			if rest == "" && i+1 < len(lines) && startsWithLabel(lines[i+1]) < 0 {
				rest = cutAtLabel(trimValue(lines[i+1]))
			}
			if rest == "" {
				continue
			}
			return rest, true
		}
	}
	return "", false
}

func allLabels() []string {
	var out []string
	for _, f := range fieldLabels {
		out = append(out, f.labels...)
	}
	return out
}

var knownLabels = allLabels()

func cutAtLabel(s string) string {
	cut := len(s)
	for _, l := range knownLabels {
		if idx := indexLabel(s, l); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return trimValue(s[:cut])
}

func startsWithLabel(line string) int {
	for i, l := range knownLabels {
		if indexLabel(line, l) == 0 {
			return i
		}
	}
	return -1
}

func containsAnyLabel(line string, labels []string) bool {
	for _, l := range labels {
		if indexLabel(line, l) >= 0 {
			return true
		}
	}
	return false
}

// indexLabel finds label in s as a whole word sequence.
func indexLabel(s, label string) int {
	from := 0
	for from <= len(s) {
		idx := strings.Index(s[from:], label)
		if idx < 0 {
			return -1
		}
		idx += from
		end := idx + len(label)
		if boundaryBefore(s, idx) && boundaryAfter(s, end) {
			return idx
		}
		from = idx + 1
	}
	return -1
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r := rune(s[idx-1])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	r := rune(s[end])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func trimValue(s string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), ":.-_|"))
}

func normalizeLine(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// idLength reports whether d has the digit count of a Kenyan ID number, the
// same 7-8 digits the standalone fallback accepts.
func idLength(d string) bool {
	return len(d) >= 7 && len(d) <= 8
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
