package conf

import "github.com/jasontconnell/conf"

type ExportSettings struct {
	ContentTypes []string           `json:"contentTypes"`
	Attachments  AttachmentSettings `json:"attachments"`
}

type AttachmentSettings struct {
	LatestOnly bool `json:"latestOnly"`
	Flatten    bool `json:"flatten"`
}

func LoadExportSettings(fn string) (ExportSettings, error) {
	settings := ExportSettings{}
	err := conf.LoadConfig(fn, &settings)
	return settings, err
}
