package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Child element orders from the WordprocessingML schema. Only the elements
// this package creates need to be placed correctly; unknown elements are
// left where they are.
var (
	pPrOrder = []string{
		"pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr", "widowControl",
		"numPr", "suppressLineNumbers", "pBdr", "shd", "tabs", "suppressAutoHyphens",
		"kinsoku", "wordWrap", "overflowPunct", "topLinePunct", "autoSpaceDE", "autoSpaceDN",
		"bidi", "adjustRightInd", "snapToGrid", "spacing", "ind", "contextualSpacing",
		"mirrorIndents", "suppressOverlap", "jc", "textDirection", "textAlignment",
		"textboxTightWrap", "outlineLvl", "divId", "cnfStyle", "rPr", "sectPr", "pPrChange",
	}

	rPrOrder = []string{
		"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps", "strike", "dstrike",
		"outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid", "vanish",
		"webHidden", "color", "spacing", "w", "kern", "position", "sz", "szCs", "highlight",
		"u", "effect", "bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang",
		"eastAsianLayout", "specVanish", "oMath",
	}

	// headerReference and footerReference may interleave; both rank first.
	sectPrOrder = []string{
		"headerReference|footerReference", "footnotePr", "endnotePr", "type", "pgSz", "pgMar",
		"paperSrc", "pgBorders", "lnNumType", "pgNumType", "cols", "formProt", "vAlign",
		"noEndnote", "titlePg", "textDirection", "bidi", "rtlGutter", "docGrid",
		"printerSettings", "sectPrChange",
	}

	settingsOrder = []string{
		"writeProtection", "view", "zoom", "removePersonalInformation", "removeDateAndTime",
		"doNotDisplayPageBoundaries", "displayBackgroundShape", "printPostScriptOverText",
		"printFractionalCharacterWidth", "printFormsData", "embedTrueTypeFonts",
		"embedSystemFonts", "saveSubsetFonts", "saveFormsData", "mirrorMargins",
		"alignBordersAndEdges", "bordersDoNotSurroundHeader", "bordersDoNotSurroundFooter",
		"gutterAtTop", "hideSpellingErrors", "hideGrammaticalErrors", "activeWritingStyle",
		"proofState", "formsDesign", "attachedTemplate", "linkStyles",
		"stylePaneFormatFilter", "stylePaneSortMethod", "documentType", "mailMerge",
		"revisionView", "trackRevisions", "doNotTrackMoves", "doNotTrackFormatting",
		"documentProtection", "autoFormatOverride", "styleLockTheme", "styleLockQFSet",
		"defaultTabStop", "autoHyphenation", "consecutiveHyphenLimit", "hyphenationZone",
		"doNotHyphenateCaps", "showEnvelope", "summaryLength", "clickAndTypeStyle",
		"defaultTableStyle", "evenAndOddHeaders", "bookFoldRevPrinting", "bookFoldPrinting",
		"bookFoldPrintingSheets", "drawingGridHorizontalSpacing", "drawingGridVerticalSpacing",
		"displayHorizontalDrawingGridEvery", "displayVerticalDrawingGridEvery",
		"doNotUseMarginsForDrawingGridOrigin", "drawingGridHorizontalOrigin",
		"drawingGridVerticalOrigin", "doNotShadeFormData", "noPunctuationKerning",
		"characterSpacingControl", "printTwoOnOne", "strictFirstAndLastChars",
		"noLineBreaksAfter", "noLineBreaksBefore", "savePreviewPicture",
		"doNotValidateAgainstSchema", "saveInvalidXml", "ignoreMixedContent",
		"alwaysShowPlaceholderText", "doNotDemarcateInvalidXml", "saveXmlDataOnly",
		"useXSLTWhenSaving", "saveThroughXslt", "showXMLTags", "alwaysMergeEmptyNamespace",
		"updateFields", "hdrShapeDefaults", "footnotePr", "endnotePr", "compat", "docVars",
		"rsids", "mathPr", "attachedSchema", "themeFontLang", "clrSchemeMapping",
		"doNotIncludeSubdocsInStats", "doNotAutoCompressPictures", "forceUpgrade", "captions",
		"readModeInkLockDown", "smartTagType", "schemaLibrary", "shapeDefaults",
		"doNotEmbedSmartTags", "decimalSymbol", "listSeparator",
	}
)

func rankOf(order []string, tag string) int {
	for i, name := range order {
		if name == tag {
			return i
		}
		if strings.Contains(name, "|") {
			for _, alt := range strings.Split(name, "|") {
				if alt == tag {
					return i
				}
			}
		}
	}
	return -1
}

// insertOrdered adds el to parent before the first child that the schema
// places after it.
func insertOrdered(parent, el *etree.Element, order []string) {
	rank := rankOf(order, el.Tag)
	if rank >= 0 {
		for _, c := range parent.ChildElements() {
			if r := rankOf(order, c.Tag); r > rank {
				parent.InsertChildAt(c.Index(), el)
				return
			}
		}
	}
	parent.AddChild(el)
}

// ensureChild returns the w:tag child of parent, creating it in schema order.
func ensureChild(parent *etree.Element, tag string, order []string) *etree.Element {
	if el := parent.SelectElement("w:" + tag); el != nil {
		return el
	}
	el := etree.NewElement("w:" + tag)
	insertOrdered(parent, el, order)
	return el
}

func setW(el *etree.Element, key, value string) {
	el.CreateAttr("w:"+key, value)
}

func wAttr(el *etree.Element, key string) string {
	return el.SelectAttrValue("w:"+key, "")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// newValElement creates <w:tag w:val="value"/>.
func newValElement(tag, value string) *etree.Element {
	el := etree.NewElement("w:" + tag)
	setW(el, "val", value)
	return el
}

// xmlSafe drops characters XML 1.0 cannot carry.
func xmlSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r >= 0x20 && r <= 0xD7FF:
			return r
		case r >= 0xE000 && r <= 0xFFFD:
			return r
		case r >= 0x10000 && r <= 0x10FFFF:
			return r
		}
		return -1
	}, s)
}

// Text returns the visible text of an element: w:t content, tabs as "\t"
// and breaks as "\n", paragraphs separated by "\n".
func Text(el *etree.Element) string {
	var b strings.Builder
	collectText(el, &b)
	return b.String()
}

func collectText(el *etree.Element, b *strings.Builder) {
	for _, c := range el.ChildElements() {
		if c.Space != "w" {
			continue
		}
		switch c.Tag {
		case "t":
			b.WriteString(c.Text())
		case "tab":
			b.WriteByte('\t')
		case "br", "cr":
			b.WriteByte('\n')
		case "instrText", "delText", "pPr", "rPr", "sectPr", "tblPr", "tcPr", "trPr":
		case "p":
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			collectText(c, b)
		default:
			collectText(c, b)
		}
	}
}

// isW reports whether el is the w:tag element.
func isW(el *etree.Element, tag string) bool {
	return el != nil && el.Space == "w" && el.Tag == tag
}

// MergeNamespaces declares on dst every prefix src declares and dst lacks,
// and adds the src mc:Ignorable prefixes to dst's list. A prefix dst already
// binds is left alone.
func MergeNamespaces(dst, src *etree.Element) {
	declared := make(map[string]string)
	for _, a := range dst.Attr {
		if a.Space == "xmlns" {
			declared[a.Key] = a.Value
		}
	}
	for _, a := range src.Attr {
		if a.Space != "xmlns" {
			continue
		}
		if _, ok := declared[a.Key]; ok {
			continue
		}
		dst.CreateAttr("xmlns:"+a.Key, a.Value)
		declared[a.Key] = a.Value
	}

	srcIgnorable := strings.Fields(src.SelectAttrValue("mc:Ignorable", ""))
	if len(srcIgnorable) == 0 {
		return
	}
	list := strings.Fields(dst.SelectAttrValue("mc:Ignorable", ""))
	seen := make(map[string]bool, len(list))
	for _, p := range list {
		seen[p] = true
	}
	changed := false
	for _, p := range srcIgnorable {
		if seen[p] || declared[p] == "" {
			continue
		}
		seen[p] = true
		list = append(list, p)
		changed = true
	}
	if !changed {
		return
	}
	if declared["mc"] == "" {
		dst.CreateAttr("xmlns:mc", NSMC)
	}
	dst.CreateAttr("mc:Ignorable", strings.Join(list, " "))
}
