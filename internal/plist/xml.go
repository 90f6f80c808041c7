// Package plist renders and reads the Info.plist manifest of an app bundle.
package plist

import (
	"bytes"
	"text/template"
)

// infoPlistTemplate is the fixed manifest layout. Values are substituted
// verbatim; callers are expected to pass names that are already safe for XML.
const infoPlistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleExecutable</key>
	<string>{{.ExecName}}</string>
	<key>CFBundleIconFile</key>
	<string>{{.IconFile}}</string>
	<key>CFBundleIdentifier</key>
	<string>{{.BundleID}}</string>
	<key>CFBundleName</key>
	<string>{{.AppName}}</string>
	<key>CFBundlePackageType</key>
	<string>{{.PackageType}}</string>
	<key>NSPrincipalClass</key>
	<string>{{.PrincipalClass}}</string>
	<key>NSHighResolutionCapable</key>
	{{boolTag .HighResolutionCapable}}
	<key>LSUIElement</key>
	{{boolTag .UIElement}}
</dict>
</plist>
`

var infoTmpl = template.Must(template.New("Info.plist").Funcs(template.FuncMap{
	"boolTag": boolTag,
}).Parse(infoPlistTemplate))

// boolTag returns the plist element for a boolean value.
func boolTag(v bool) string {
	if v {
		return "<true/>"
	}
	return "<false/>"
}

func render(cfg InfoPlistConfig) ([]byte, error) {
	var buf bytes.Buffer
	if err := infoTmpl.Execute(&buf, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
