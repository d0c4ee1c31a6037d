package integrity

import "fmt"

func (c InsertRoom) Describe() string {
	return fmt.Sprintf("insert rooms:%d", c.Room.RoomID)
}

func (c DeleteRoom) Describe() string {
	return fmt.Sprintf("delete rooms:%d", c.RoomID)
}

func (c DeleteItem) Describe() string {
	return fmt.Sprintf("delete %s:%d", c.Collection, c.ItemID)
}

func (c PushConnection) Describe() string {
	return fmt.Sprintf("connect rooms:%d -> rooms:%d", c.RoomID, c.Ref.RoomID)
}

func (c PullConnection) Describe() string {
	return fmt.Sprintf("disconnect rooms:%d -> rooms:%d", c.RoomID, c.PeerID)
}

func (c PullConnectionsTo) Describe() string {
	return fmt.Sprintf("disconnect every room from rooms:%d", c.PeerID)
}

func (c SetConnections) Describe() string {
	return fmt.Sprintf("set %d connections on rooms:%d", len(c.Refs), c.RoomID)
}

func (c SetRoomMonsters) Describe() string {
	return fmt.Sprintf("set %d monsters on rooms:%d", len(c.Monsters), c.RoomID)
}

func (c SetRoomLoot) Describe() string {
	return fmt.Sprintf("set %d loot on rooms:%d", len(c.Loot), c.RoomID)
}

func (c SetPlacement) Describe() string {
	return fmt.Sprintf("place %s:%d in rooms:%d x%d", c.Collection, c.ItemID, c.Placement.RoomID, c.Placement.Amount)
}

func (c PullPlacement) Describe() string {
	return fmt.Sprintf("unplace %s:%d from rooms:%d", c.Collection, c.ItemID, c.RoomID)
}

func (c PullPlacementsForRoom) Describe() string {
	return fmt.Sprintf("unplace every item from rooms:%d", c.RoomID)
}

func (c PullItemFromRooms) Describe() string {
	return fmt.Sprintf("remove %s:%d from every room", c.Collection, c.ItemID)
}

func (c PushUserHint) Describe() string {
	return fmt.Sprintf("add hint %s to users:%s", c.Hint.HintID, c.Email)
}

func (c PushRoomHint) Describe() string {
	return fmt.Sprintf("add hint %s to rooms:%d", c.Hint.HintID, c.RoomID)
}

func (c PullUserHint) Describe() string {
	return fmt.Sprintf("remove hint %s from users:%s", c.HintID, c.Email)
}

func (c PullRoomHint) Describe() string {
	return fmt.Sprintf("remove hint %s from rooms:%d", c.HintID, c.RoomID)
}

func (c PullUserHintsForRoom) Describe() string {
	return fmt.Sprintf("remove every user hint about rooms:%d", c.RoomID)
}
