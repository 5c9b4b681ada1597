package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type TemplateID string

func NewTemplateID(id string) TemplateID { return TemplateID(id) }
func (t TemplateID) String() string      { return string(t) }
func (t TemplateID) IsEmpty() bool       { return string(t) == "" }
