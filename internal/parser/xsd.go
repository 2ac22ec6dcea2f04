package parser

import (
	"encoding/xml"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"mapforge/internal/apperr"
	"mapforge/internal/field"
)

// xsdParser reads XML Schema documents: top-level element declarations,
// complex-type particles (sequence, choice, all, group references), and
// simple-type restrictions (enumeration, max-length).
type xsdParser struct{}

// Format returns FormatXSD.
func (p *xsdParser) Format() Format {
	return FormatXSD
}

// Parse converts an XSD document into field nodes, one per element
// declaration plus one per complex-type attribute.
func (p *xsdParser) Parse(data []byte) ([]field.FieldNode, error) {
	var doc xsdSchema

	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, apperr.Parse("malformed XSD document", err)
	}

	if doc.XMLName.Local != "schema" {
		return nil, apperr.Parsef("document root is <%s>, expected an XML Schema <schema> element", doc.XMLName.Local)
	}

	w := &xsdWalker{doc: &doc, expanding: map[string]bool{}}

	for i := range doc.Elements {
		w.emitElement(&doc.Elements[i], nil, "")
	}

	return w.nodes, nil
}

// --- document model ---

type xsdSchema struct {
	XMLName      xml.Name         `xml:"schema"`
	Elements     []xsdElement     `xml:"element"`
	ComplexTypes []xsdComplexType `xml:"complexType"`
	SimpleTypes  []xsdSimpleType  `xml:"simpleType"`
	Groups       []xsdGroup       `xml:"group"`
}

type xsdElement struct {
	Name        string          `xml:"name,attr"`
	Ref         string          `xml:"ref,attr"`
	Type        string          `xml:"type,attr"`
	MinOccurs   string          `xml:"minOccurs,attr"`
	MaxOccurs   string          `xml:"maxOccurs,attr"`
	Fixed       string          `xml:"fixed,attr"`
	Default     string          `xml:"default,attr"`
	Annotation  *xsdAnnotation  `xml:"annotation"`
	ComplexType *xsdComplexType `xml:"complexType"`
	SimpleType  *xsdSimpleType  `xml:"simpleType"`
}

type xsdComplexType struct {
	Name       string         `xml:"name,attr"`
	Sequence   *xsdParticle   `xml:"sequence"`
	Choice     *xsdParticle   `xml:"choice"`
	All        *xsdParticle   `xml:"all"`
	Group      *xsdGroupRef   `xml:"group"`
	Attributes []xsdAttribute `xml:"attribute"`
}

// xsdParticle models sequence/choice/all content, including nesting.
type xsdParticle struct {
	Elements  []xsdElement  `xml:"element"`
	Sequences []xsdParticle `xml:"sequence"`
	Choices   []xsdParticle `xml:"choice"`
	Groups    []xsdGroupRef `xml:"group"`
}

type xsdGroup struct {
	Name     string       `xml:"name,attr"`
	Sequence *xsdParticle `xml:"sequence"`
	Choice   *xsdParticle `xml:"choice"`
	All      *xsdParticle `xml:"all"`
}

type xsdGroupRef struct {
	Ref string `xml:"ref,attr"`
}

type xsdAttribute struct {
	Name       string         `xml:"name,attr"`
	Type       string         `xml:"type,attr"`
	Use        string         `xml:"use,attr"`
	Fixed      string         `xml:"fixed,attr"`
	Default    string         `xml:"default,attr"`
	SimpleType *xsdSimpleType `xml:"simpleType"`
}

type xsdSimpleType struct {
	Name        string          `xml:"name,attr"`
	Restriction *xsdRestriction `xml:"restriction"`
}

type xsdRestriction struct {
	Base         string     `xml:"base,attr"`
	Enumerations []xsdFacet `xml:"enumeration"`
	MaxLength    *xsdFacet  `xml:"maxLength"`
}

type xsdFacet struct {
	Value string `xml:"value,attr"`
}

type xsdAnnotation struct {
	Documentation string `xml:"documentation"`
}

// occursFacets is the serialized schema-attributes side channel.
type occursFacets struct {
	MinOccurs string `yaml:"minOccurs,omitempty"`
	MaxOccurs string `yaml:"maxOccurs,omitempty"`
}

// --- walker ---

type xsdWalker struct {
	doc   *xsdSchema
	seq   idSequence
	nodes []field.FieldNode

	// expanding guards against recursive named complex types.
	expanding map[string]bool
}

// emitElement emits the node for one element declaration and recurses into
// its complex content.
func (w *xsdWalker) emitElement(el *xsdElement, parentID *int64, parentPath string) {
	decl := el
	if el.Name == "" && el.Ref != "" {
		// Bare reference: the declaration lives at the top level.
		resolved := w.findElement(localName(el.Ref))
		if resolved == nil {
			return
		}

		decl = resolved
	}

	name := decl.Name
	if name == "" {
		return
	}

	path := name
	if parentPath != "" {
		path = parentPath + "." + name
	}

	complexType, simpleType := w.resolveTypes(decl)

	node := field.FieldNode{
		ParentID:    parentID,
		Path:        path,
		Name:        name,
		DataType:    w.dataType(decl, complexType, simpleType),
		IsArray:     isUnboundedOrMany(el.MaxOccurs),
		IsMandatory: isExplicitlyRequired(el.MinOccurs),
	}

	if length, ok := maxLengthFacet(simpleType); ok {
		node.Length = &length
	}

	if example, ok := elementExample(decl, simpleType); ok {
		node.ExampleValue = &example
	}

	if decl.Annotation != nil {
		if doc := strings.TrimSpace(decl.Annotation.Documentation); doc != "" {
			node.Description = &doc
		}
	}

	node.SchemaAttributes = serializeOccurs(el.MinOccurs, el.MaxOccurs)

	id := w.add(node)

	if complexType == nil {
		return
	}

	// Named complex types may reference themselves; expand each name once
	// per branch and stop the descent on re-entry.
	if complexType.Name != "" {
		if w.expanding[complexType.Name] {
			return
		}

		w.expanding[complexType.Name] = true
		defer delete(w.expanding, complexType.Name)
	}

	for i := range complexType.Attributes {
		w.emitAttribute(&complexType.Attributes[i], id, path)
	}

	w.walkParticles(complexType, &id, path)
}

// emitAttribute emits one node for a complex-type attribute at the owning
// element's path plus the "@" step.
func (w *xsdWalker) emitAttribute(attr *xsdAttribute, ownerID int64, ownerPath string) {
	if attr.Name == "" {
		return
	}

	node := field.FieldNode{
		ParentID:    &ownerID,
		Path:        field.AttributePath(ownerPath, attr.Name),
		Name:        attr.Name,
		DataType:    attributeDataType(attr),
		IsMandatory: attr.Use == "required",
	}

	if example, ok := attributeExample(attr); ok {
		node.ExampleValue = &example
	}

	if length, ok := maxLengthFacet(attr.SimpleType); ok {
		node.Length = &length
	}

	w.add(node)
}

// walkParticles expands the complex type's content model.
func (w *xsdWalker) walkParticles(ct *xsdComplexType, parentID *int64, parentPath string) {
	for _, particle := range []*xsdParticle{ct.Sequence, ct.Choice, ct.All} {
		w.walkParticle(particle, parentID, parentPath)
	}

	if ct.Group != nil {
		w.walkGroupRef(ct.Group, parentID, parentPath)
	}
}

func (w *xsdWalker) walkParticle(p *xsdParticle, parentID *int64, parentPath string) {
	if p == nil {
		return
	}

	for i := range p.Elements {
		w.emitElement(&p.Elements[i], parentID, parentPath)
	}

	for i := range p.Sequences {
		w.walkParticle(&p.Sequences[i], parentID, parentPath)
	}

	for i := range p.Choices {
		w.walkParticle(&p.Choices[i], parentID, parentPath)
	}

	for i := range p.Groups {
		w.walkGroupRef(&p.Groups[i], parentID, parentPath)
	}
}

func (w *xsdWalker) walkGroupRef(ref *xsdGroupRef, parentID *int64, parentPath string) {
	group := w.findGroup(localName(ref.Ref))
	if group == nil {
		return
	}

	for _, particle := range []*xsdParticle{group.Sequence, group.Choice, group.All} {
		w.walkParticle(particle, parentID, parentPath)
	}
}

func (w *xsdWalker) add(n field.FieldNode) int64 {
	n.ID = w.seq.Next()
	w.nodes = append(w.nodes, n)

	return n.ID
}

// --- lookups ---

func (w *xsdWalker) findElement(name string) *xsdElement {
	for i := range w.doc.Elements {
		if w.doc.Elements[i].Name == name {
			return &w.doc.Elements[i]
		}
	}

	return nil
}

func (w *xsdWalker) findComplexType(name string) *xsdComplexType {
	for i := range w.doc.ComplexTypes {
		if w.doc.ComplexTypes[i].Name == name {
			return &w.doc.ComplexTypes[i]
		}
	}

	return nil
}

func (w *xsdWalker) findSimpleType(name string) *xsdSimpleType {
	for i := range w.doc.SimpleTypes {
		if w.doc.SimpleTypes[i].Name == name {
			return &w.doc.SimpleTypes[i]
		}
	}

	return nil
}

func (w *xsdWalker) findGroup(name string) *xsdGroup {
	for i := range w.doc.Groups {
		if w.doc.Groups[i].Name == name {
			return &w.doc.Groups[i]
		}
	}

	return nil
}

// resolveTypes resolves the element's inline or named type declarations.
func (w *xsdWalker) resolveTypes(el *xsdElement) (*xsdComplexType, *xsdSimpleType) {
	if el.ComplexType != nil {
		return el.ComplexType, nil
	}

	if el.SimpleType != nil {
		return nil, el.SimpleType
	}

	if el.Type == "" {
		return nil, nil
	}

	name := localName(el.Type)

	if ct := w.findComplexType(name); ct != nil {
		return ct, nil
	}

	if st := w.findSimpleType(name); st != nil {
		return nil, st
	}

	return nil, nil
}

// dataType resolves the declared data type string for an element.
func (w *xsdWalker) dataType(el *xsdElement, ct *xsdComplexType, st *xsdSimpleType) string {
	if ct != nil {
		if ct.Name != "" {
			return ct.Name
		}

		return "Complex"
	}

	if st != nil {
		if st.Name != "" {
			return st.Name
		}

		if st.Restriction != nil && st.Restriction.Base != "" {
			return localName(st.Restriction.Base)
		}
	}

	if el.Type != "" {
		return localName(el.Type)
	}

	return "String"
}

func attributeDataType(attr *xsdAttribute) string {
	if attr.Type != "" {
		return localName(attr.Type)
	}

	if attr.SimpleType != nil && attr.SimpleType.Restriction != nil && attr.SimpleType.Restriction.Base != "" {
		return localName(attr.SimpleType.Restriction.Base)
	}

	return "String"
}

// elementExample resolves the example literal: fixed value first, then
// default, then the first enumeration facet of a simple restriction.
func elementExample(el *xsdElement, st *xsdSimpleType) (string, bool) {
	if el.Fixed != "" {
		return el.Fixed, true
	}

	if el.Default != "" {
		return el.Default, true
	}

	if st != nil && st.Restriction != nil && len(st.Restriction.Enumerations) > 0 {
		return st.Restriction.Enumerations[0].Value, true
	}

	return "", false
}

func attributeExample(attr *xsdAttribute) (string, bool) {
	if attr.Fixed != "" {
		return attr.Fixed, true
	}

	if attr.Default != "" {
		return attr.Default, true
	}

	if attr.SimpleType != nil && attr.SimpleType.Restriction != nil && len(attr.SimpleType.Restriction.Enumerations) > 0 {
		return attr.SimpleType.Restriction.Enumerations[0].Value, true
	}

	return "", false
}

func maxLengthFacet(st *xsdSimpleType) (int, bool) {
	if st == nil || st.Restriction == nil || st.Restriction.MaxLength == nil {
		return 0, false
	}

	length, err := strconv.Atoi(st.Restriction.MaxLength.Value)
	if err != nil {
		return 0, false
	}

	return length, true
}

// isUnboundedOrMany reports whether maxOccurs declares repetition.
func isUnboundedOrMany(maxOccurs string) bool {
	if maxOccurs == "unbounded" {
		return true
	}

	n, err := strconv.Atoi(maxOccurs)

	return err == nil && n > 1
}

// isExplicitlyRequired treats an absent minOccurs as optional. This inverts
// the XML Schema default on purpose: only an explicit minOccurs > 0 marks a
// field mandatory.
func isExplicitlyRequired(minOccurs string) bool {
	if minOccurs == "" {
		return false
	}

	n, err := strconv.Atoi(minOccurs)

	return err == nil && n > 0
}

// serializeOccurs captures the occurrence facets as the opaque
// schema-attributes side channel.
func serializeOccurs(minOccurs, maxOccurs string) string {
	if minOccurs == "" && maxOccurs == "" {
		return ""
	}

	data, err := yaml.Marshal(occursFacets{MinOccurs: minOccurs, MaxOccurs: maxOccurs})
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}

// localName strips a namespace prefix from a QName.
func localName(qname string) string {
	if i := strings.LastIndex(qname, ":"); i >= 0 {
		return qname[i+1:]
	}

	return qname
}
