// Package config provides project configuration and path layout for quickcode.
//
// Configuration lives in an optional quickcode.json at the project root. A
// project without the file gets the defaults, which match the layout the
// QuickCode UI registry expects.
//
// # Configuration File Structure
//
//	{
//	  "registry": "https://raw.githubusercontent.com/iamsufiyan560/QuickCode/main/components-map.js",
//	  "componentsDir": "components/ui",
//	  "hooksDir": "hooks",
//	  "componentExt": ".tsx",
//	  "hookExt": ".ts",
//	  "packageManager": "npm",
//	  "s3Region": "us-east-1",
//	  "timeout": "30s"
//	}
//
// # Layout
//
// Destination paths are rooted at the base directory, which is <root>/src
// when that directory exists and <root> otherwise:
//
//	<base>/components/ui/<Name>.tsx
//	<base>/hooks/<name>.ts
//	<base>/lib/utils.ts
//	<base>/app/globals.css
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(root)
//	if err != nil {
//	    return err
//	}
//	layout := cfg.Layout()
//	dest, err := layout.ComponentPath("Chart/LineChart")
package config
