// Package i18n provides the locale value threaded through query
// compilation and graph analysis, a Translator interface for message
// lookup with {placeholder} substitution, and the built-in German and
// English catalogs.
package i18n
