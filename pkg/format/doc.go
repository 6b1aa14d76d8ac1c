// Package format reflows free-form text into fixed-width lines.
//
// # Overview
//
// A paragraph is split on whitespace into words and the words are packed
// greedily into lines no wider than
//
//	Columns - LeftMargin - RightMargin - indent
//
// where indent is FirstIndent on the first line and BodyIndent afterwards.
// Finished lines are rendered under one of four styles: [Left], [Right],
// [Fill] and [Justify].
//
// # Overlong Words
//
// When a word does not fit, it normally moves to the next line. A word
// containing a hyphen may always be broken after the hyphen. With
// [Config.HardMargins] set, words are also divided at the margin following
// [Config.SplitRules], tried in this order:
//
//  1. [SplitHyphenation]: the installed [Hyphenator] (by default the
//     built-in [Continuation] hyphenator)
//  2. [SplitContinuation]: cut one character early and add a backslash
//  3. [SplitFixed]: cut exactly at the margin; also used when the word
//     could not be hyphenated and would not fit on the next line whole
//
// Every division is recorded as a [SplitWord]; see [Formatter.SplitWords].
//
// # Sentence Spacing
//
// With [Config.ExtraSpace], a word ending in terminal punctuation
// (optionally followed by a closing quote) gets two spaces after it, unless
// it is an abbreviation such as "Mr." (see [Abbreviations] and
// [Config.Abbreviations]).
//
// # Nobreak Pairs
//
// With [Config.NoBreak], a line never ends between two words matched by a
// [NoBreakPair]. The break moves back to the nearest allowed boundary; a
// line whose boundaries are all bound breaks where it must.
//
// # Usage
//
//	f, err := format.New(format.Config{Columns: 20, SplitRules: format.SplitFixed})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(f.Format("The quick brown fox jumps over the lazy dog."))
//
// Output:
//
//	The quick brown fox
//	jumps over the lazy
//	dog.
package format
