package assets

import (
	"embed"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

var Templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

const (
	VivadoScriptTemplate = "vivado.tcl.tmpl"
	ClockTemplate        = "clock.xdc.tmpl"
)

type VivadoScriptTemplateParams struct {
	Entity           string
	Project          string
	Part             string
	Source           string
	ClockConstraints string
	Run              string
	TimingReport     string
}

type ClockTemplateParams struct {
	Port     string
	PeriodNs string
}
