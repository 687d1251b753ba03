package bulletin

import (
	"regexp"

	"github.com/beevik/etree"
	"github.com/couchcryptid/forecast-bulletin-etl/internal/domain"
)

// strategy locates named numeric series under one document dialect.
// Strategies are independent and side-effect free; the extractor tries them
// in fixed priority order.
type strategy interface {
	Name() string
	Extract(root *etree.Element, raw string) domain.ParameterSet
}

// arrayStrategy handles the tabular-array layout: SimpleArrayData nodes
// inside ExtendedData sections (including those nested under per-site
// Placemark nodes), code in a name/id attribute, values as nested value
// children or whitespace-packed text.
type arrayStrategy struct{}

func (arrayStrategy) Name() string { return "array" }

func (arrayStrategy) Extract(root *etree.Element, _ string) domain.ParameterSet {
	set := domain.ParameterSet{}
	for _, node := range findAll(root, "SimpleArrayData") {
		code := attrValue(node, "name", "id")
		if code == "" {
			continue
		}
		vals := collectValues(node)
		if len(vals) == 0 {
			continue
		}
		if _, ok := set[code]; ok {
			continue
		}
		set[code] = domain.ParameterSeries{
			Code:   code,
			Unit:   attrValue(node, "uom", "unit"),
			Values: vals,
		}
	}
	return set
}

// seriesStrategy handles the structured time-series layout: a Forecast node
// holding a TimeSeries node whose Parameter children carry the code as an
// id/name attribute and values in a values element or repeated value children.
type seriesStrategy struct{}

func (seriesStrategy) Name() string { return "series" }

func (seriesStrategy) Extract(root *etree.Element, _ string) domain.ParameterSet {
	set := domain.ParameterSet{}
	for _, fc := range findAll(root, "Forecast") {
		for _, ts := range findAll(fc, "TimeSeries") {
			for _, param := range findAll(ts, "Parameter") {
				code := attrValue(param, "id", "name")
				if code == "" {
					continue
				}
				vals := collectValues(param)
				if len(vals) == 0 {
					continue
				}
				if _, ok := set[code]; ok {
					continue
				}
				set[code] = domain.ParameterSeries{
					Code:   code,
					Unit:   attrValue(param, "uom", "unit"),
					Values: vals,
				}
			}
		}
	}
	return set
}

// attributeStrategy handles the attribute-named layout: Forecast nodes
// carrying the code directly in an elementName attribute (or child), values
// in nested value nodes.
type attributeStrategy struct{}

func (attributeStrategy) Name() string { return "attribute" }

func (attributeStrategy) Extract(root *etree.Element, _ string) domain.ParameterSet {
	set := domain.ParameterSet{}
	for _, fc := range findAll(root, "Forecast") {
		code := attrValue(fc, "elementName")
		if code == "" {
			if names := findAll(fc, "elementName"); len(names) > 0 {
				code = text(names[0])
			}
		}
		if code == "" {
			continue
		}
		vals := collectValues(fc)
		if len(vals) == 0 {
			continue
		}
		if _, ok := set[code]; ok {
			continue
		}
		set[code] = domain.ParameterSeries{
			Code:   code,
			Unit:   attrValue(fc, "uom", "unit"),
			Values: vals,
		}
	}
	return set
}

// Raw-text patterns for the three tree layouts, used when the parsed tree
// yields nothing (e.g. the parser produced an unexpected shape).
var (
	rawArrayRe    = regexp.MustCompile(`(?is)<(?:[\w.-]+:)?SimpleArrayData\b([^>]*)>(.*?)</(?:[\w.-]+:)?SimpleArrayData>`)
	rawParamRe    = regexp.MustCompile(`(?is)<(?:[\w.-]+:)?Parameter\b([^>]*)>(.*?)</(?:[\w.-]+:)?Parameter>`)
	rawForecastRe = regexp.MustCompile(`(?is)<(?:[\w.-]+:)?Forecast\b([^>]*\belementName\b[^>]*)>(.*?)</(?:[\w.-]+:)?Forecast>`)
	rawValueRe    = regexp.MustCompile(`(?is)<(?:[\w.-]+:)?values?[^>]*>([^<]*)</`)
	rawNameAttrRe = regexp.MustCompile(`(?i)(?:[\w.-]+:)?(?:elementName|name|id)\s*=\s*"([^"]+)"`)
)

// rawTextStrategy scans the raw markup text with patterns for the array,
// series, and attribute layouts, in that order, accepting the first layout
// that yields parameters.
type rawTextStrategy struct{}

func (rawTextStrategy) Name() string { return "rawtext" }

func (rawTextStrategy) Extract(_ *etree.Element, raw string) domain.ParameterSet {
	if raw == "" {
		return nil
	}
	for _, re := range []*regexp.Regexp{rawArrayRe, rawParamRe, rawForecastRe} {
		set := domain.ParameterSet{}
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			code := rawAttr(m[1])
			if code == "" {
				continue
			}
			vals := rawValues(m[2])
			if len(vals) == 0 {
				continue
			}
			if _, ok := set[code]; ok {
				continue
			}
			set[code] = domain.ParameterSeries{Code: code, Values: vals}
		}
		if len(set) > 0 {
			return set
		}
	}
	return nil
}

func rawAttr(attrs string) string {
	if m := rawNameAttrRe.FindStringSubmatch(attrs); m != nil {
		return m[1]
	}
	return ""
}

func rawValues(body string) []*float64 {
	var out []*float64
	for _, m := range rawValueRe.FindAllStringSubmatch(body, -1) {
		out = append(out, parseTokens(m[1])...)
	}
	if len(out) == 0 {
		out = parseTokens(body)
	}
	return out
}

// genericStrategy is the exhaustive last resort: every node exposing a
// name-like attribute and a numeric-sequence-like payload is treated as a
// parameter. The same code appearing more than once concatenates, so series
// split across sections still come out whole.
type genericStrategy struct{}

func (genericStrategy) Name() string { return "generic" }

func (genericStrategy) Extract(root *etree.Element, _ string) domain.ParameterSet {
	set := domain.ParameterSet{}
	walk(root, func(node *etree.Element) {
		code := attrValue(node, "name", "id", "elementName")
		if code == "" {
			return
		}
		vals := collectValues(node)
		if !hasNumeric(vals) {
			return
		}
		series := set[code]
		series.Code = code
		if series.Unit == "" {
			series.Unit = attrValue(node, "uom", "unit")
		}
		series.Values = append(series.Values, vals...)
		set[code] = series
	})
	return set
}

// collectValues reads a node's numeric sequence: a packed values element
// first, then repeated value children (each possibly whitespace-packed),
// falling back to the node's own packed text content.
func collectValues(node *etree.Element) []*float64 {
	var out []*float64
	for _, v := range findAll(node, "values") {
		out = append(out, parseTokens(v.Text())...)
	}
	if len(out) == 0 {
		for _, v := range findAll(node, "value") {
			out = append(out, parseTokens(v.Text())...)
		}
	}
	if len(out) == 0 {
		out = parseTokens(node.Text())
	}
	return out
}

func hasNumeric(vals []*float64) bool {
	for _, v := range vals {
		if v != nil {
			return true
		}
	}
	return false
}
