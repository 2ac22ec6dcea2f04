package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapforge/internal/apperr"
	"mapforge/internal/field"
)

func parseXSD(t *testing.T, doc string) []field.FieldNode {
	t.Helper()

	p, err := ForFormat(FormatXSD)
	require.NoError(t, err)

	nodes, err := p.Parse([]byte(doc))
	require.NoError(t, err)

	return nodes
}

func byPath(nodes []field.FieldNode, path string) *field.FieldNode {
	for i := range nodes {
		if nodes[i].Path == path {
			return &nodes[i]
		}
	}

	return nil
}

const orderXSD = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="order">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="id" type="xs:string" minOccurs="1">
          <xs:annotation>
            <xs:documentation>Order number</xs:documentation>
          </xs:annotation>
        </xs:element>
        <xs:element name="note" type="xs:string"/>
        <xs:element name="item" maxOccurs="unbounded" minOccurs="0">
          <xs:complexType>
            <xs:sequence>
              <xs:element name="sku" type="skuType"/>
              <xs:element name="status" type="statusType"/>
            </xs:sequence>
          </xs:complexType>
        </xs:element>
      </xs:sequence>
      <xs:attribute name="currency" type="xs:string" use="required" fixed="EUR"/>
    </xs:complexType>
  </xs:element>
  <xs:simpleType name="skuType">
    <xs:restriction base="xs:string">
      <xs:maxLength value="12"/>
    </xs:restriction>
  </xs:simpleType>
  <xs:simpleType name="statusType">
    <xs:restriction base="xs:string">
      <xs:enumeration value="open"/>
      <xs:enumeration value="closed"/>
    </xs:restriction>
  </xs:simpleType>
</xs:schema>`

func TestParseXSDElements(t *testing.T) {
	nodes := parseXSD(t, orderXSD)

	order := byPath(nodes, "order")
	require.NotNil(t, order)
	assert.Nil(t, order.ParentID)
	assert.Equal(t, "Complex", order.DataType)
	assert.False(t, order.IsMandatory)

	id := byPath(nodes, "order.id")
	require.NotNil(t, id)
	assert.Equal(t, "string", id.DataType)

	// Only an explicit minOccurs > 0 marks a field mandatory.
	assert.True(t, id.IsMandatory)
	require.NotNil(t, id.Description)
	assert.Equal(t, "Order number", *id.Description)

	note := byPath(nodes, "order.note")
	require.NotNil(t, note)
	assert.False(t, note.IsMandatory, "absent minOccurs is optional")

	item := byPath(nodes, "order.item")
	require.NotNil(t, item)
	assert.True(t, item.IsArray)
	assert.False(t, item.IsMandatory)
	assert.Contains(t, item.SchemaAttributes, "maxOccurs: unbounded")

	sku := byPath(nodes, "order.item.sku")
	require.NotNil(t, sku)
	assert.Equal(t, "skuType", sku.DataType)
	require.NotNil(t, sku.Length)
	assert.Equal(t, 12, *sku.Length)
}

func TestParseXSDAttributes(t *testing.T) {
	nodes := parseXSD(t, orderXSD)

	currency := byPath(nodes, "order.@currency")
	require.NotNil(t, currency)

	order := byPath(nodes, "order")
	require.NotNil(t, currency.ParentID)
	assert.Equal(t, order.ID, *currency.ParentID)

	assert.Equal(t, "string", currency.DataType)
	assert.True(t, currency.IsMandatory)
	require.NotNil(t, currency.ExampleValue)
	assert.Equal(t, "EUR", *currency.ExampleValue)
}

func TestParseXSDEnumerationExample(t *testing.T) {
	nodes := parseXSD(t, orderXSD)

	status := byPath(nodes, "order.item.status")
	require.NotNil(t, status)
	require.NotNil(t, status.ExampleValue)

	// First enumeration facet serves as the example.
	assert.Equal(t, "open", *status.ExampleValue)
}

const shipmentXSD = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="shipment">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="id" type="xs:string"/>
        <xs:choice>
          <xs:element name="parcel" type="xs:string"/>
          <xs:element name="pallet" type="xs:string"/>
        </xs:choice>
        <xs:group ref="addressGroup"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
  <xs:element name="contact">
    <xs:complexType>
      <xs:all>
        <xs:element name="email" type="xs:string"/>
        <xs:element name="phone" type="xs:string"/>
      </xs:all>
    </xs:complexType>
  </xs:element>
  <xs:element name="delivery">
    <xs:complexType>
      <xs:group ref="addressGroup"/>
    </xs:complexType>
  </xs:element>
  <xs:group name="addressGroup">
    <xs:sequence>
      <xs:element name="street" type="xs:string"/>
      <xs:element name="city" type="xs:string"/>
    </xs:sequence>
  </xs:group>
</xs:schema>`

func TestParseXSDChoiceAllAndGroups(t *testing.T) {
	nodes := parseXSD(t, shipmentXSD)

	shipment := byPath(nodes, "shipment")
	require.NotNil(t, shipment)

	// Choice alternatives become ordinary children of the owning element.
	for _, path := range []string{"shipment.parcel", "shipment.pallet"} {
		n := byPath(nodes, path)
		require.NotNil(t, n, path)
		require.NotNil(t, n.ParentID, path)
		assert.Equal(t, shipment.ID, *n.ParentID, path)
	}

	// A group reference inside a sequence expands in place.
	assert.NotNil(t, byPath(nodes, "shipment.street"))
	assert.NotNil(t, byPath(nodes, "shipment.city"))

	// All-group content is walked like a sequence.
	assert.NotNil(t, byPath(nodes, "contact.email"))
	assert.NotNil(t, byPath(nodes, "contact.phone"))

	// A group reference can be the complex type's entire content model.
	assert.NotNil(t, byPath(nodes, "delivery.street"))
	assert.NotNil(t, byPath(nodes, "delivery.city"))
}

func TestParseXSDElementRef(t *testing.T) {
	nodes := parseXSD(t, `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="envelope">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="payload"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
  <xs:element name="payload" type="xs:string"/>
</xs:schema>`)

	// The referenced declaration is expanded in place and also emitted as its
	// own top-level root.
	assert.NotNil(t, byPath(nodes, "envelope.payload"))
	assert.NotNil(t, byPath(nodes, "payload"))
}

func TestParseXSDRecursiveType(t *testing.T) {
	nodes := parseXSD(t, `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="category" type="categoryType"/>
  <xs:complexType name="categoryType">
    <xs:sequence>
      <xs:element name="name" type="xs:string"/>
      <xs:element name="child" type="categoryType"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`)

	// Recursion stops after one expansion of the named type.
	assert.NotNil(t, byPath(nodes, "category"))
	assert.NotNil(t, byPath(nodes, "category.name"))
	assert.NotNil(t, byPath(nodes, "category.child"))
	assert.Nil(t, byPath(nodes, "category.child.name"))
}

func TestParseXSDRejectsNonSchemaRoot(t *testing.T) {
	p, err := ForFormat(FormatXSD)
	require.NoError(t, err)

	_, err = p.Parse([]byte(`<order><id>1</id></order>`))
	require.Error(t, err)
	assert.True(t, apperr.IsParse(err))

	_, err = p.Parse([]byte(`not xml at all`))
	require.Error(t, err)
	assert.True(t, apperr.IsParse(err))
}
