// Package pkg holds the guidecard libraries.
//
// A card flows through the packages in this order:
//
//	[layout.State]          text, styles and font chosen by the user
//	       ↓
//	[layout.Compose]        lines, emoji and characters from [scatter]
//	       ↓
//	[render.Mount]          a capturable raster surface with looping motion
//	       ↓
//	[export.Exporter]       one PNG, or six frames assembled into a GIF
//	       ↓
//	[export.Downloader]     a directory or an HTTP attachment
//
// [pipeline] ties the stages together for the CLI and the HTTP server;
// [config], [fonts], [errors] and [observability] support every stage.
package pkg
