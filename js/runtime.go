package js

import (
	"github.com/dop251/goja"
	"github.com/pkg/errors"

	"github.com/nightjarhq/nightjar/dom"
)

// Runtime is a goja VM wired to a document. Scripts see a document global
// whose methods map straight onto the dom package, plus NodeFilter
// constants, a MutationObserver constructor and queueMicrotask.
type Runtime struct {
	vm   *goja.Runtime
	loop *EventLoop
	doc  *dom.Document
}

// NewRuntime creates a runtime over doc.
func NewRuntime(doc *dom.Document) (*Runtime, error) {
	rt := &Runtime{
		vm:   goja.New(),
		loop: NewEventLoop(doc),
		doc:  doc,
	}
	rt.vm.SetFieldNameMapper(goja.UncapFieldNameMapper())
	if err := rt.bindGlobals(); err != nil {
		return nil, errors.Wrap(err, "binding globals")
	}
	return rt, nil
}

// VM exposes the underlying goja runtime for host extensions.
func (rt *Runtime) VM() *goja.Runtime {
	return rt.vm
}

// Loop returns the runtime's event loop.
func (rt *Runtime) Loop() *EventLoop {
	return rt.loop
}

// RunScript evaluates src as a macrotask: the script runs, then the
// microtask checkpoint delivers any pending observer records.
func (rt *Runtime) RunScript(name, src string) (goja.Value, error) {
	value, err := rt.vm.RunScript(name, src)
	if err != nil {
		return nil, errors.Wrapf(err, "running script %s", name)
	}
	rt.loop.Checkpoint()
	return value, nil
}

func (rt *Runtime) bindGlobals() error {
	if err := rt.vm.Set("document", rt.doc); err != nil {
		return err
	}

	nodeFilter := rt.vm.NewObject()
	for name, value := range map[string]uint32{
		"FILTER_ACCEPT":               uint32(dom.FilterAccept),
		"FILTER_REJECT":               uint32(dom.FilterReject),
		"FILTER_SKIP":                 uint32(dom.FilterSkip),
		"SHOW_ALL":                    dom.ShowAll,
		"SHOW_ELEMENT":                dom.ShowElement,
		"SHOW_TEXT":                   dom.ShowText,
		"SHOW_CDATA_SECTION":          dom.ShowCDATASection,
		"SHOW_PROCESSING_INSTRUCTION": dom.ShowProcessingInstruction,
		"SHOW_COMMENT":                dom.ShowComment,
		"SHOW_DOCUMENT":               dom.ShowDocument,
		"SHOW_DOCUMENT_TYPE":          dom.ShowDocumentType,
		"SHOW_DOCUMENT_FRAGMENT":      dom.ShowDocumentFragment,
	} {
		if err := nodeFilter.Set(name, value); err != nil {
			return err
		}
	}
	if err := rt.vm.Set("NodeFilter", nodeFilter); err != nil {
		return err
	}

	if err := rt.vm.Set("createNodeIterator", rt.jsCreateNodeIterator); err != nil {
		return err
	}
	if err := rt.vm.Set("createTreeWalker", rt.jsCreateTreeWalker); err != nil {
		return err
	}
	if err := rt.vm.Set("MutationObserver", rt.jsNewMutationObserver); err != nil {
		return err
	}
	if err := rt.vm.Set("getSelection", rt.doc.GetSelection); err != nil {
		return err
	}
	return rt.vm.Set("queueMicrotask", func(fn goja.Callable) {
		rt.loop.QueueMicrotask(func() {
			_, _ = fn(goja.Undefined())
		})
	})
}

// toNodeFilter adapts a script value into a dom.NodeFilter: either a bare
// function or an object with an acceptNode method. Script exceptions
// propagate out of the traversal as errors.
func (rt *Runtime) toNodeFilter(v goja.Value) dom.NodeFilter {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	callable, ok := goja.AssertFunction(v)
	if !ok {
		obj := v.ToObject(rt.vm)
		callable, ok = goja.AssertFunction(obj.Get("acceptNode"))
		if !ok {
			return nil
		}
	}
	return dom.NodeFilterFunc(func(node *dom.Node) (dom.FilterResult, error) {
		result, err := callable(goja.Undefined(), rt.vm.ToValue(node))
		if err != nil {
			return 0, errors.Wrap(err, "node filter callback")
		}
		return dom.FilterResult(result.ToInteger()), nil
	})
}

func (rt *Runtime) jsCreateNodeIterator(root *dom.Node, whatToShow uint32, filter goja.Value) *dom.NodeIterator {
	if whatToShow == 0 {
		whatToShow = dom.ShowAll
	}
	return rt.doc.CreateNodeIterator(root, whatToShow, rt.toNodeFilter(filter))
}

func (rt *Runtime) jsCreateTreeWalker(root *dom.Node, whatToShow uint32, filter goja.Value) *dom.TreeWalker {
	if whatToShow == 0 {
		whatToShow = dom.ShowAll
	}
	return rt.doc.CreateTreeWalker(root, whatToShow, rt.toNodeFilter(filter))
}

// jsNewMutationObserver is the MutationObserver constructor scripts call
// with new. The returned object carries observe, disconnect and
// takeRecords, with observe reading the options bag the way the platform
// does: absent keys stay unset, so attributeOldValue can imply attributes.
func (rt *Runtime) jsNewMutationObserver(call goja.ConstructorCall) *goja.Object {
	callback, ok := goja.AssertFunction(call.Argument(0))
	if !ok {
		panic(rt.vm.NewTypeError("MutationObserver callback must be a function"))
	}

	var wrapper *goja.Object
	mo := dom.NewMutationObserver(func(records []*dom.MutationRecord, _ *dom.MutationObserver) {
		_, _ = callback(goja.Undefined(), rt.vm.ToValue(records), wrapper)
	})

	wrapper = rt.vm.NewObject()
	mustSet(wrapper, "observe", func(target *dom.Node, options goja.Value) {
		opts, err := rt.toObserveOptions(options)
		if err != nil {
			panic(rt.vm.NewTypeError(err.Error()))
		}
		if err := mo.Observe(target, opts); err != nil {
			panic(rt.vm.NewTypeError(err.Error()))
		}
	})
	mustSet(wrapper, "disconnect", mo.Disconnect)
	mustSet(wrapper, "takeRecords", mo.TakeRecords)
	return wrapper
}

func (rt *Runtime) toObserveOptions(v goja.Value) (dom.ObserveOptions, error) {
	var opts dom.ObserveOptions
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return opts, nil
	}
	obj := v.ToObject(rt.vm)

	boolProp := func(name string) (bool, bool) {
		p := obj.Get(name)
		if p == nil || goja.IsUndefined(p) {
			return false, false
		}
		return p.ToBoolean(), true
	}

	if b, ok := boolProp("childList"); ok {
		opts.ChildList = b
	}
	if b, ok := boolProp("subtree"); ok {
		opts.Subtree = b
	}
	if b, ok := boolProp("attributes"); ok {
		opts.Attributes = &b
	}
	if b, ok := boolProp("characterData"); ok {
		opts.CharacterData = &b
	}
	if b, ok := boolProp("attributeOldValue"); ok {
		opts.AttributeOldValue = b
	}
	if b, ok := boolProp("characterDataOldValue"); ok {
		opts.CharacterDataOldValue = b
	}

	if p := obj.Get("attributeFilter"); p != nil && !goja.IsUndefined(p) && !goja.IsNull(p) {
		var filter []string
		if err := rt.vm.ExportTo(p, &filter); err != nil {
			return opts, errors.Wrap(err, "attributeFilter must be a sequence of strings")
		}
		if filter == nil {
			filter = []string{}
		}
		opts.AttributeFilter = filter
	}
	return opts, nil
}

func mustSet(obj *goja.Object, name string, value interface{}) {
	if err := obj.Set(name, value); err != nil {
		panic(err)
	}
}
