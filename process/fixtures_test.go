package process

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testSettings() Settings {
	return Settings{Logger: zerolog.Nop()}
}

func wrap(blocks ...string) string {
	return "<hibernate-generic datetime=\"2026-01-01 00:00:00\">\n" + strings.Join(blocks, "\n") + "\n</hibernate-generic>"
}

func parseBlocks(t *testing.T, blocks ...string) *ParseResult {
	t.Helper()
	res, err := Parse(strings.NewReader(wrap(blocks...)), testSettings())
	require.NoError(t, err)
	return res
}

const pageBlock = `<object class="Page" package="com.atlassian.confluence.pages">
  <id name="id">100</id>
  <property name="title"><![CDATA[Home]]></property>
  <property name="version" class="java.lang.Integer">3</property>
  <property name="creationDate" class="java.sql.Timestamp">2023-01-02 03:04:05.678</property>
  <property name="lastModificationDate" class="java.sql.Timestamp">2023-02-02 03:04:05.678</property>
  <property name="space" class="Space" package="com.atlassian.confluence.spaces"><id name="id">900</id></property>
  <property name="creator" class="ConfluenceUserImpl" package="com.atlassian.confluence.user"><id name="key">abc123</id></property>
  <property name="parent" class="Page" package="com.atlassian.confluence.pages"><id name="id">999</id></property>
  <collection name="bodyContents" class="java.util.Collection">
    <element class="BodyContent" package="com.atlassian.confluence.core"><id name="id">300</id></element>
  </collection>
  <collection name="labellings" class="java.util.List">
    <object class="Labelling" package="com.atlassian.confluence.labels">
      <id name="id">400</id>
      <ref name="label" class="Label"><id name="id">500</id></ref>
    </object>
  </collection>
  <collection name="contentProperties" class="java.util.List">
    <element class="ContentProperty"><id name="id">600</id></element>
  </collection>
</object>`

const bodyBlock = `<object class="BodyContent" package="com.atlassian.confluence.core">
  <id name="id">300</id>
  <property name="body"><![CDATA[<p>Hello <b>world</b> &amp; moon</p>]]></property>
  <property name="content" class="Page"><id name="id">100</id></property>
</object>`

const spaceBlock = `<object class="Space" package="com.atlassian.confluence.spaces">
  <id name="id">900</id>
  <property name="key">DEV</property>
  <property name="name">Dev Space</property>
</object>`

const userBlock = `<object class="ConfluenceUserImpl" package="com.atlassian.confluence.user">
  <id name="key">abc123</id>
  <property name="fullName">Ada Lovelace</property>
  <property name="name">ada</property>
</object>`

const labelBlock = `<object class="Label" package="com.atlassian.confluence.labels">
  <id name="id">500</id>
  <property name="name">docs</property>
  <property name="namespace">global</property>
</object>`

const propBlock = `<object class="ContentProperty" package="com.atlassian.confluence.content">
  <id name="id">600</id>
  <property name="name">review-status</property>
  <property name="stringValue">approved</property>
  <property name="content" class="Page"><id name="id">100</id></property>
</object>`

const blogBlock = `<object class="BlogPost" package="com.atlassian.confluence.pages">
  <id name="id">200</id>
  <property name="title">Release notes</property>
  <property name="version" class="java.lang.Integer">1</property>
  <property name="creationDate" class="java.sql.Timestamp">2023-03-01 10:00:00.000</property>
  <property name="creator" class="ConfluenceUserImpl"><id name="key">abc123</id></property>
</object>`

const customBlock = `<object class="CustomContentEntityObject" package="com.atlassian.confluence.content">
  <id name="id">250</id>
  <property name="pluginModuleKey">com.example:decision</property>
  <property name="containerContent" class="BlogPost"><id name="id">200</id></property>
  <property name="creator" class="ConfluenceUserImpl"><id name="key">abc123</id></property>
</object>`

const attachmentBlock = `<object class="Attachment" package="com.atlassian.confluence.pages.attachments">
  <id name="id">700</id>
  <property name="title">diagram.png</property>
  <property name="attachmentVersion" class="java.lang.Integer">2</property>
  <property name="creationDate" class="java.sql.Timestamp">2023-01-05 08:00:00.000</property>
  <property name="content" class="Page"><id name="id">100</id></property>
  <property name="creator" class="ConfluenceUserImpl"><id name="key">abc123</id></property>
  <collection name="contentProperties" class="java.util.List">
    <element class="ContentProperty"><id name="id">710</id></element>
    <element class="ContentProperty"><id name="id">711</id></element>
  </collection>
</object>`

const mediaTypePropBlock = `<object class="ContentProperty" package="com.atlassian.confluence.content">
  <id name="id">710</id>
  <property name="name">MEDIA_TYPE</property>
  <property name="stringValue">image/png</property>
</object>`

const fileSizePropBlock = `<object class="ContentProperty" package="com.atlassian.confluence.content">
  <id name="id">711</id>
  <property name="name">FILESIZE</property>
  <property name="longValue" class="java.lang.Long">2048</property>
</object>`

var allBlocks = []string{
	pageBlock, bodyBlock, spaceBlock, userBlock, labelBlock, propBlock,
	blogBlock, customBlock, attachmentBlock, mediaTypePropBlock, fileSizePropBlock,
}
