package dom

import (
	"github.com/sirupsen/logrus"
)

// MutationRecord describes one observed mutation. Removed nodes are
// already unlinked when the record is delivered; PreviousSibling and
// NextSibling capture where they used to sit.
type MutationRecord struct {
	// Type is "childList", "attributes" or "characterData".
	Type   string
	Target *Node

	AddedNodes      *NodeList
	RemovedNodes    *NodeList
	PreviousSibling *Node
	NextSibling     *Node

	AttributeName      string
	AttributeNamespace string

	// OldValue is only populated when the matching registration asked
	// for it; HasOldValue distinguishes "empty" from "absent".
	OldValue    string
	HasOldValue bool
}

// mutationRecord is the pre-fanout form shared by all observers of one
// mutation; each interested observer gets its own MutationRecord with its
// own old-value decision.
type mutationRecord struct {
	recordType      string
	target          *Node
	added           []*Node
	removed         []*Node
	previousSibling *Node
	nextSibling     *Node
	attributeName   string
	attributeNS     string
	oldValue        string
	hasOldValue     bool
}

// ObserveOptions configures one Observe registration. Attributes and
// CharacterData are tristate: leaving them nil lets AttributeOldValue,
// AttributeFilter and CharacterDataOldValue imply them.
type ObserveOptions struct {
	ChildList     bool
	Attributes    *bool
	CharacterData *bool
	Subtree       bool

	AttributeOldValue     bool
	CharacterDataOldValue bool

	// AttributeFilter restricts attribute records to these local names,
	// namespace-less. nil means no filtering.
	AttributeFilter []string
}

// observerOptions is a resolved registration.
type observerOptions struct {
	childList             bool
	attributes            bool
	characterData         bool
	subtree               bool
	attributeOldValue     bool
	characterDataOldValue bool
	attributeFilter       []string
	hasAttributeFilter    bool
}

// MutationObserverCallback receives the swapped-out record batch. It runs
// on the document's microtask queue.
type MutationObserverCallback func(records []*MutationRecord, observer *MutationObserver)

// MutationObserver watches part of a document tree and batches mutation
// records for asynchronous delivery. One observer may watch any number of
// targets; re-observing a target replaces its registration.
type MutationObserver struct {
	callback  MutationObserverCallback
	targets   map[*Node]*observerOptions
	queue     []*MutationRecord
	scheduled bool
}

// NewMutationObserver creates an observer with the given callback.
func NewMutationObserver(callback MutationObserverCallback) *MutationObserver {
	return &MutationObserver{
		callback: callback,
		targets:  make(map[*Node]*observerOptions),
	}
}

// Observe starts watching target with the given options. Returns a
// TypeError when the options are inconsistent or observe nothing.
func (mo *MutationObserver) Observe(target *Node, options ObserveOptions) error {
	resolved, err := resolveOptions(options)
	if err != nil {
		return err
	}

	doc := target.document()
	if doc == nil || doc.documentData == nil {
		return ErrType("The target does not belong to a document.")
	}

	if _, known := mo.targets[target]; !known {
		found := false
		for _, o := range doc.documentData.observers {
			if o == mo {
				found = true
				break
			}
		}
		if !found {
			doc.documentData.observers = append(doc.documentData.observers, mo)
		}
	}
	mo.targets[target] = resolved
	return nil
}

func resolveOptions(options ObserveOptions) (*observerOptions, error) {
	o := &observerOptions{
		childList:             options.ChildList,
		subtree:               options.Subtree,
		attributeOldValue:     options.AttributeOldValue,
		characterDataOldValue: options.CharacterDataOldValue,
		attributeFilter:       options.AttributeFilter,
		hasAttributeFilter:    options.AttributeFilter != nil,
	}

	// Absent booleans are implied true by their refinements.
	if options.Attributes != nil {
		o.attributes = *options.Attributes
	} else if options.AttributeOldValue || o.hasAttributeFilter {
		o.attributes = true
	}
	if options.CharacterData != nil {
		o.characterData = *options.CharacterData
	} else if options.CharacterDataOldValue {
		o.characterData = true
	}

	if !o.childList && !o.attributes && !o.characterData {
		return nil, ErrType("The options object must set at least one of 'childList', 'attributes' or 'characterData' to true.")
	}
	if options.AttributeOldValue && options.Attributes != nil && !*options.Attributes {
		return nil, ErrType("The options object may not set 'attributeOldValue' true when 'attributes' is false.")
	}
	if o.hasAttributeFilter && options.Attributes != nil && !*options.Attributes {
		return nil, ErrType("The options object may not set 'attributeFilter' when 'attributes' is false.")
	}
	if options.CharacterDataOldValue && options.CharacterData != nil && !*options.CharacterData {
		return nil, ErrType("The options object may not set 'characterDataOldValue' true when 'characterData' is false.")
	}
	return o, nil
}

// Disconnect stops all observation and discards any pending records.
func (mo *MutationObserver) Disconnect() {
	seen := make(map[*Document]struct{})
	for target := range mo.targets {
		if doc := target.document(); doc != nil {
			seen[doc] = struct{}{}
		}
	}
	for doc := range seen {
		observers := doc.documentData.observers
		for i, o := range observers {
			if o == mo {
				doc.documentData.observers = append(observers[:i], observers[i+1:]...)
				break
			}
		}
	}
	mo.targets = make(map[*Node]*observerOptions)
	mo.queue = nil
}

// TakeRecords returns the pending records and empties the queue without
// waiting for delivery.
func (mo *MutationObserver) TakeRecords() []*MutationRecord {
	records := mo.queue
	mo.queue = nil
	return records
}

// queueMutationRecord fans one mutation out to every interested observer
// registration, walking the target's inclusive ancestors so subtree
// registrations on ancestors match. Each mutation yields at most one
// record per observer, with old-value interest aggregated across that
// observer's matching registrations.
func queueMutationRecord(doc *Document, rec mutationRecord) {
	if len(doc.documentData.observers) == 0 {
		return
	}

	type interest struct {
		observer *MutationObserver
		oldValue bool
	}
	var interested []interest
	seen := make(map[*MutationObserver]int)

	for node := rec.target; node != nil; node = node.parentNode {
		for _, observer := range doc.documentData.observers {
			opts, ok := observer.targets[node]
			if !ok {
				continue
			}
			if node != rec.target && !opts.subtree {
				continue
			}

			switch rec.recordType {
			case "childList":
				if !opts.childList {
					continue
				}
			case "attributes":
				if !opts.attributes {
					continue
				}
				if opts.hasAttributeFilter && (rec.attributeNS != "" || !containsString(opts.attributeFilter, rec.attributeName)) {
					continue
				}
			case "characterData":
				if !opts.characterData {
					continue
				}
			}

			wantsOld := (rec.recordType == "attributes" && opts.attributeOldValue) ||
				(rec.recordType == "characterData" && opts.characterDataOldValue)

			if i, dup := seen[observer]; dup {
				if wantsOld {
					interested[i].oldValue = true
				}
				continue
			}
			seen[observer] = len(interested)
			interested = append(interested, interest{observer: observer, oldValue: wantsOld})
		}
	}

	for _, in := range interested {
		record := &MutationRecord{
			Type:               rec.recordType,
			Target:             rec.target,
			AddedNodes:         newStaticNodeList(rec.added),
			RemovedNodes:       newStaticNodeList(rec.removed),
			PreviousSibling:    rec.previousSibling,
			NextSibling:        rec.nextSibling,
			AttributeName:      rec.attributeName,
			AttributeNamespace: rec.attributeNS,
		}
		if in.oldValue && rec.hasOldValue {
			record.OldValue = rec.oldValue
			record.HasOldValue = true
		}
		in.observer.enqueue(doc, record)
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// enqueue appends a record and schedules delivery. Scheduling is
// idempotent: many records in one task coalesce into a single delivery.
func (mo *MutationObserver) enqueue(doc *Document, record *MutationRecord) {
	mo.queue = append(mo.queue, record)
	if mo.scheduled {
		return
	}
	mo.scheduled = true
	doc.documentData.scheduler.QueueMicrotask(mo.deliver)
}

// deliver swaps the queue out before invoking the callback, so records
// queued during the callback land in a fresh batch with a fresh delivery.
func (mo *MutationObserver) deliver() {
	mo.scheduled = false
	records := mo.queue
	mo.queue = nil
	if len(records) == 0 {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("mutation observer callback panicked")
		}
	}()
	mo.callback(records, mo)
}
