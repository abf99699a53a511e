// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/fair-bioheaders/fhr/pkg/fhr"
)

const (
	FileNotFoundId Id = iota + 1
	UnsupportedFormatId
	MissingFieldId
	MalformedCarrierId
	SchemaViolationId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Renderer interface {
		Render(in string, stylePath string) (string, error)
	}

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
	}
)

const specLink HttpLink = "https://github.com/FAIR-bioHeaders/FHR-Specification"

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found

The input file does not exist or is not a regular file.

## Things you can try:
- Check the path for typos
- Use an absolute path when running from another directory`,
	}

	unsupportedFormatIssue = &Issue{
		id: UnsupportedFormatId,
		mdMsg: `
# Unsupported metadata format

The carrier is chosen from the file extension, and this one is not recognised.

## Supported extensions:
| Extension | Carrier |
|---|---|
| .yml, .yaml | structured document |
| .json | object notation |
| .fasta, .fa | sequence-file comments (` + "`;~`" + `) |
| .gfa | graph-file comments (` + "`#~`" + `) |
| .html, .htm | microdata markup |

## Things you can try:
- Rename the file to one of the extensions above
- Pass ` + "`--to`" + ` with one of: yaml, json, fasta, gfa, html`,
		docLinks: []HttpLink{specLink},
	}

	missingFieldIssue = &Issue{
		id: MissingFieldId,
		mdMsg: `
# Missing field in metadata header

The header lacks a field that every FHR header must carry.

## Required fields:
schema, schemaVersion, genome, taxon (name, uri), version, metadataAuthor,
assemblyAuthor (name and uri of every entry), dateCreated, masking, checksum

## Things you can try:
- Add the field, even with an empty value, and run ` + "`fhr validate`" + ` to check it`,
		docLinks: []HttpLink{specLink},
	}

	malformedCarrierIssue = &Issue{
		id: MalformedCarrierId,
		mdMsg: `
# Malformed metadata carrier

The file could not be read as a header in its carrier format.

## Things you can try:
- FASTA files need header lines starting with ` + "`;~`" + `, GFA files with ` + "`#~`" + `
- HTML files need an element with ` + "`itemscope`" + ` and the FHR ` + "`itemtype`" + `
- Check YAML and JSON files for syntax errors`,
	}

	schemaViolationIssue = &Issue{
		id: SchemaViolationId,
		mdMsg: `
# Header does not satisfy the FHR schema

The header was read, but a field breaks a schema rule.

## Common causes:
- Author URIs must be ORCID URIs (https://orcid.org/0000-0000-0000-0000)
- taxon.uri must be an identifiers.org taxonomy URI
- dateCreated must be a calendar date (YYYY-MM-DD)
- checksum must be a 44-character base64 sha2-512/256 digest`,
		docLinks: []HttpLink{specLink},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

## Things you can try:
- Check the CUE syntax of your config file
- Print the effective configuration:
~~~
$ fhr config show
~~~
- Recreate the default file:
~~~
$ fhr config init
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

## Things you can try:
- Check the permissions of the input file and the output directory
- Choose another output path with ` + "`-o`",
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():      fileNotFoundIssue,
		unsupportedFormatIssue.Id(): unsupportedFormatIssue,
		missingFieldIssue.Id():      missingFieldIssue,
		malformedCarrierIssue.Id():  malformedCarrierIssue,
		schemaViolationIssue.Id():   schemaViolationIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		permissionDeniedIssue.Id():  permissionDeniedIssue,
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

// Values returns every issue ordered by Id.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	values := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		values = append(values, issues[id])
	}
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}

// ForError returns the issue describing err, or nil when none applies.
func ForError(err error) *Issue {
	var violation *fhr.SchemaViolation
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fhr.ErrUnsupportedFormat):
		return Get(UnsupportedFormatId)
	case errors.Is(err, fhr.ErrMissingField):
		return Get(MissingFieldId)
	case errors.Is(err, fhr.ErrMalformedCarrier):
		return Get(MalformedCarrierId)
	case errors.As(err, &violation):
		return Get(SchemaViolationId)
	case errors.Is(err, fs.ErrNotExist):
		return Get(FileNotFoundId)
	case errors.Is(err, fs.ErrPermission):
		return Get(PermissionDeniedId)
	default:
		return nil
	}
}
