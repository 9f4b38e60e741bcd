// Package render turns assistant replies into terminal or HTML output.
package render

import (
	"os"

	"github.com/diogo/ghagent/internal/config"
)

// minWidth keeps glamour's word wrap usable on tiny terminals
const minWidth = 20

// Options selects a glamour renderer. It is comparable and doubles as the
// renderer pool key.
type Options struct {
	Width int
	// Style is a theme name from AvailableThemes or a path to a JSON style.
	Style            string
	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions mirrors the default markdown section of the config file.
func DefaultOptions() Options {
	return fromMarkdown(config.DefaultMarkdownConfig(), 80)
}

// OptionsFromConfig builds render options from user configuration.
// GLAMOUR_STYLE wins over the configured style.
func OptionsFromConfig(cfg config.Config) Options {
	opts := fromMarkdown(cfg.Markdown, 80)
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	return opts
}

func fromMarkdown(md config.MarkdownConfig, width int) Options {
	style := md.Style
	if style == "" {
		style = ThemeDark
	}
	return Options{
		Width:            width,
		Style:            style,
		EnableEmoji:      md.EnableEmoji,
		PreserveNewLines: md.PreserveNewLines,
		TableWrap:        md.TableWrap,
		InlineTableLinks: md.InlineTableLinks,
	}
}

// WithWidth returns a copy wrapping at width, never below minWidth.
func (o Options) WithWidth(width int) Options {
	o.Width = max(width, minWidth)
	return o
}

// WithStyle returns a copy using style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
