package process

import "encoding/xml"

// Decode shapes for the export's generic object grammar. An object block is
//
//	<object class="Page" package="com.atlassian.confluence.pages">
//	  <id name="id">123</id>
//	  <property name="title"><![CDATA[Home]]></property>
//	  <property name="space" class="Space"><id name="id">98</id></property>
//	  <ref name="label"><id name="id">55</id></ref>
//	  <collection name="bodyContents" class="java.util.Collection">
//	    <element class="BodyContent"><id name="id">777</id></element>
//	  </collection>
//	</object>

type xmlObject struct {
	Class       string          `xml:"class,attr"`
	Package     string          `xml:"package,attr"`
	Ids         []xmlId         `xml:"id"`
	Properties  []xmlProperty   `xml:"property"`
	Refs        []xmlRef        `xml:"ref"`
	Collections []xmlCollection `xml:"collection"`
}

type xmlId struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Class string `xml:"class,attr"`
	Id    *xmlId `xml:"id"`
	Value string `xml:",chardata"`
}

type xmlRef struct {
	Name  string `xml:"name,attr"`
	Class string `xml:"class,attr"`
	Id    *xmlId `xml:"id"`
}

type xmlCollection struct {
	Name  string              `xml:"name,attr"`
	Class string              `xml:"class,attr"`
	Items []xmlCollectionItem `xml:",any"`
}

// xmlCollectionItem covers every element kind a collection can hold: <element>
// and <ref> cross-references, embedded anonymous <object> blocks, and plain
// scalar elements.
type xmlCollectionItem struct {
	XMLName     xml.Name
	Class       string          `xml:"class,attr"`
	Ids         []xmlId         `xml:"id"`
	Properties  []xmlProperty   `xml:"property"`
	Refs        []xmlRef        `xml:"ref"`
	Collections []xmlCollection `xml:"collection"`
	Value       string          `xml:",chardata"`
}
