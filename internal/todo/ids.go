package todo

// ListID identifies a todo list. List and item ids are assigned by the
// store and are not interchangeable even though both are small integers.
type ListID uint32

// ItemID identifies an item, unique across all items regardless of list.
type ItemID uint32
