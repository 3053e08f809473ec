package ast

type (
	// главные сущности
	UnitID   uint32
	ClassID  uint32
	MethodID uint32
	ExprID   uint32
	TypeID   uint32
	// подсущности
	ParamID   uint32
	GenericID uint32
	PayloadID uint32
)

const (
	NoUnitID    UnitID    = 0
	NoClassID   ClassID   = 0
	NoMethodID  MethodID  = 0
	NoExprID    ExprID    = 0
	NoTypeID    TypeID    = 0
	NoParamID   ParamID   = 0
	NoGenericID GenericID = 0
	NoPayloadID PayloadID = 0
)

func (id UnitID) IsValid() bool    { return id != NoUnitID }
func (id ClassID) IsValid() bool   { return id != NoClassID }
func (id MethodID) IsValid() bool  { return id != NoMethodID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id ParamID) IsValid() bool   { return id != NoParamID }
func (id GenericID) IsValid() bool { return id != NoGenericID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
