package webui

import (
	"context"
	"html/template"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/xid"
	"google.golang.org/appengine/v2/log"

	"github.com/scorpio189f/Media-Search-Bot-1/config"
	"github.com/scorpio189f/Media-Search-Bot-1/dctx"
	"github.com/scorpio189f/Media-Search-Bot-1/models"
	"github.com/scorpio189f/Media-Search-Bot-1/textparse"
	"github.com/scorpio189f/Media-Search-Bot-1/utils"
)

const pageSize = 20

type page struct {
	Query          string
	NextPageCursor string
	Media          []media
}

type media struct {
	FileName   string
	FileType   string
	Size       string
	UsageCount string
	Caption    template.HTML
	// Empty when no archive URL prefix is configured.
	URL string
}

func makeMedia(ctx context.Context, m *models.Media) media {
	out := media{
		FileName:   m.FileName,
		FileType:   m.FileType,
		Size:       humanize.Bytes(uint64(m.FileSize)),
		UsageCount: humanize.Comma(m.UsageCount),
		// Unparse escapes all text.
		Caption: template.HTML(textparse.Unparse(m.Caption, m.Entities(ctx))),
	}
	if prefix := config.Get().WebUIFileURLPrefix; prefix != "" {
		out.URL = prefix + utils.GCSObjectName(m.FileUniqueID)
	}
	return out
}

var tmpl = template.Must(template.New("template").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1.0" />
	<title>Media Search</title>
	<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/water.css@2/out/water.min.css">
</head>
<body>
	<h1>Media Search</h1>
	<form method="get">
		<label for="query">Query</label>
		<input name="query" id="query" value="{{.Query}}"/>
		<input type="submit" value="Submit" />
	</form>

	<table>
		<thead>
			<tr>
				<th>File</th>
				<th>Size</th>
				<th>Used</th>
				<th>Caption</th>
			</tr>
		</thead>
		<tbody>
			{{range $m := .Media}}
			<tr>
				<td>{{if $m.URL}}<a href="{{$m.URL}}">{{$m.FileName}}</a>{{else}}{{$m.FileName}}{{end}}<br/><small>{{$m.FileType}}</small></td>
				<td>{{$m.Size}}</td>
				<td>{{$m.UsageCount}}</td>
				<td>{{$m.Caption}}</td>
			</tr>
			{{end}}
		</tbody>
	</table>

	{{if .NextPageCursor}}
		<form method="get">
			<input name="query" value="{{.Query}}" type="hidden"/>
			<input name="cursor" value="{{.NextPageCursor}}" type="hidden"/>
			<input type="submit" value="Next Page" />
		</form>
	{{end}}
</body>
</html>
`))

func Handler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := dctx.NewContext(r)

	query := r.FormValue("query")
	cursor := r.FormValue("cursor")

	data := &page{Query: query}

	if query != "" {
		ms, nextCursor, err := models.SearchMedia(ctx, models.ParseQuery(query), cursor, xid.New().String(), pageSize)
		if err != nil {
			log.Errorf(ctx, "models.SearchMedia: %+v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		for _, m := range ms {
			data.Media = append(data.Media, makeMedia(ctx, m))
		}
		data.NextPageCursor = nextCursor
	}

	if err := tmpl.Execute(w, data); err != nil {
		log.Errorf(ctx, "tmpl.Execute: %+v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
