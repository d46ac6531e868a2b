package meta

// Property is the main bitmask of declaration facts: linkage-relevant
// access, mutability, virtuality and storage bits.
type Property uint64

const (
	PropCompiled Property = 1 << iota
	PropConstexpr
	PropPublic
	PropProtected
	PropPrivate
	PropStatic
	PropConstant
	PropReference
	PropPointer
	PropConstPointer
	PropConstMethod
	PropVirtual
	PropPureVirtual
	PropExplicit
)

// Strings returns textual labels for the set bits.
func (p Property) Strings() []string {
	if p == 0 {
		return nil
	}
	labels := make([]string, 0, 6)
	for _, e := range propLabels {
		if p&e.bit != 0 {
			labels = append(labels, e.name)
		}
	}
	return labels
}

var propLabels = []struct {
	bit  Property
	name string
}{
	{PropCompiled, "compiled"},
	{PropConstexpr, "constexpr"},
	{PropPublic, "public"},
	{PropProtected, "protected"},
	{PropPrivate, "private"},
	{PropStatic, "static"},
	{PropConstant, "constant"},
	{PropReference, "reference"},
	{PropPointer, "pointer"},
	{PropConstPointer, "const-pointer"},
	{PropConstMethod, "const-method"},
	{PropVirtual, "virtual"},
	{PropPureVirtual, "pure-virtual"},
	{PropExplicit, "explicit"},
}

// ExtraProperty is the second, disjoint bitmask: ABI/semantic extras kept
// apart from Property so callers needing only linkage flags can ignore it.
type ExtraProperty uint64

const (
	XPropOperator ExtraProperty = 1 << iota
	XPropConversion
	XPropConstructor
	XPropDestructor
	XPropInlined
	XPropTemplateSpec
)

// Strings returns textual labels for the set bits.
func (p ExtraProperty) Strings() []string {
	if p == 0 {
		return nil
	}
	labels := make([]string, 0, 3)
	for _, e := range xpropLabels {
		if p&e.bit != 0 {
			labels = append(labels, e.name)
		}
	}
	return labels
}

var xpropLabels = []struct {
	bit  ExtraProperty
	name string
}{
	{XPropOperator, "operator"},
	{XPropConversion, "conversion"},
	{XPropConstructor, "constructor"},
	{XPropDestructor, "destructor"},
	{XPropInlined, "inlined"},
	{XPropTemplateSpec, "template-spec"},
}
