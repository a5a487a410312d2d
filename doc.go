// Package formcheck validates web form input: it reads request values from
// a chosen source, runs ordered rule chains or callbacks per field, keeps
// one message per failed field and hands back the accepted values,
// including uploaded files ready to be stored.
//
// The root package wires the reusable packages under pkg/ together for
// net/http hosts:
//
//	forms, err := formcheck.New(ctx, cfg, formcheck.WithLogger(log))
//	...
//	func signup(w http.ResponseWriter, r *http.Request) {
//		form, err := forms.FromRequest(r)
//		if err != nil { ... }
//		defer form.Cleanup()
//
//		if err := form.Validate(r.Context(), rules); err != nil { ... }
//		if form.Failed() {
//			render(w, form.Errors())
//			return
//		}
//		objects, err := form.Store(r.Context(), storage, "avatar")
//	}
//
// Configuration is read from FORMCHECK_* environment variables, see Config.
package formcheck
