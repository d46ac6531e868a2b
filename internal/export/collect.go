package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"cppmirror/internal/diag"
	"cppmirror/internal/model"
	"cppmirror/internal/source"
	"cppmirror/meta"
)

// Collect enumerates every requested scope and builds the archive. An
// empty scope list means every named scope in the model.
func Collect(m *model.Model, scopes []string) (*Archive, error) {
	if len(scopes) == 0 {
		scopes = m.ScopeNames()
	}
	a := &Archive{Schema: archiveSchemaVersion}
	for _, name := range scopes {
		id, ok := m.Scope(name)
		if !ok {
			return nil, fmt.Errorf("export: unknown scope %s", name)
		}
		sd := ScopeDescriptor{Name: name}
		mi := meta.NewEnumerator(m.Sess, id)
		for mi.Next() {
			sd.Methods = append(sd.Methods, describe(mi))
		}
		a.Scopes = append(a.Scopes, sd)
	}
	return a, nil
}

func describe(mi *meta.MethodInfo) MethodDescriptor {
	d := MethodDescriptor{
		Name:     mi.Name(),
		Mangled:  mi.MangledName(),
		Title:    mi.Title(),
		Property: uint64(mi.Property()),
		Extra:    uint64(mi.ExtraProperty()),
		NArgs:    mi.NArg(),
		NDefault: mi.NDefaultArg(),
	}
	if rt := mi.TypeOf(); rt.IsValid() {
		d.Return = rt.Name()
	}
	for arg := mi.Args(); arg.Next(); {
		d.Params = append(d.Params, arg.TypeOf().Name())
	}
	return d
}

// ExportAll loads each manifest, collects all of its scopes, and writes
// one archive per manifest into outDir, named after the manifest file.
// Manifests are processed concurrently; session queries still serialize on
// the process-wide interpreter lock.
func ExportAll(manifests []string, outDir string, r diag.Reporter) error {
	var g errgroup.Group
	for _, path := range manifests {
		path := path
		g.Go(func() error {
			m, err := model.LoadFile(path, r)
			if err != nil {
				return err
			}
			a, err := Collect(m, nil)
			if err != nil {
				return err
			}
			base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			out := filepath.Join(outDir, base+".mp")
			if err := Write(out, a); err != nil {
				diag.ReportError(r, diag.ExportWriteFailed, source.Span{}, err.Error()).Emit()
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
