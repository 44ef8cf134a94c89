// Package setup prepares a project for quickcode components.
//
// It seeds lib/utils.ts with the cn class-name helper the components import
// and installs the quickcode theme into app/globals.css. Both paths live
// under src/ when the project has one.
package setup
